package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/urfave/cli/v2"
)

var (
	tokexDataDir = appDataDir()
	statePath    = path.Join(tokexDataDir, "state.json")

	httpClient = &http.Client{Timeout: 15 * time.Second}
)

func main() {
	app := cli.NewApp()

	app.Version = "0.0.1"
	app.Name = "tokex operator CLI"
	app.Usage = "Command line interface for tokexd daemon operators"
	app.Commands = append(
		app.Commands,
		&configCmd,
		&exchangeCmd,
		&offerCmd,
		&escrowCmd,
		&webhookCmd,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

func appDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tokex-operator"
	}
	return path.Join(home, ".tokex-operator")
}

func getState() (map[string]string, error) {
	data := map[string]string{}

	file, err := ioutil.ReadFile(statePath)
	if err != nil {
		return nil, errors.New("get config state error: try 'config init'")
	}
	json.Unmarshal(file, &data)

	return data, nil
}

func setState(data map[string]string) error {
	if _, err := os.Stat(tokexDataDir); os.IsNotExist(err) {
		os.Mkdir(tokexDataDir, os.ModeDir|0755)
	}

	currentData, _ := getState()
	mergedData := merge(currentData, data)

	jsonString, err := json.Marshal(mergedData)
	if err != nil {
		return err
	}
	if err := ioutil.WriteFile(statePath, jsonString, 0644); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}

	return nil
}

func merge(maps ...map[string]string) map[string]string {
	merge := make(map[string]string, 0)
	for _, m := range maps {
		for k, v := range m {
			merge[k] = v
		}
	}
	return merge
}

func getDaemonURL() (string, error) {
	state, err := getState()
	if err != nil {
		return "", err
	}
	addr, ok := state["rpcserver"]
	if !ok {
		return "", errors.New("set rpcserver with `config set rpcserver`")
	}
	return "http://" + addr, nil
}

func doRequest(method, route string, body interface{}) (json.RawMessage, error) {
	baseURL, err := getDaemonURL()
	if err != nil {
		return nil, err
	}

	var reqBody *bytes.Buffer = bytes.NewBuffer(nil)
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(buf)
	}

	req, err := http.NewRequest(method, baseURL+route, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to daemon: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		errMsg := struct {
			Error string `json:"error"`
		}{}
		if err := json.Unmarshal(respBody, &errMsg); err == nil && errMsg.Error != "" {
			return nil, errors.New(errMsg.Error)
		}
		return nil, fmt.Errorf("daemon replied with status %d", resp.StatusCode)
	}

	return respBody, nil
}

func printRespJSON(resp json.RawMessage) {
	var out bytes.Buffer
	if err := json.Indent(&out, resp, "", "\t"); err != nil {
		fmt.Println("unable to decode response: ", err)
		return
	}
	fmt.Println(out.String())
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[tokex] %v\n", err)
	}
	os.Exit(1)
}
