package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"
)

var (
	rpcFlag = cli.StringFlag{
		Name:  "rpcserver",
		Usage: "tokexd daemon address host:port",
		Value: "localhost:9945",
	}

	accountFlag = cli.StringFlag{
		Name:  "account",
		Usage: "the account id to act on behalf of",
		Value: "",
	}
)

var configCmd = cli.Command{
	Name:   "config",
	Usage:  "Print local configuration of the tokex CLI",
	Action: configAction,
	Subcommands: []*cli.Command{
		{
			Name:   "set",
			Usage:  "set a <key> <value> in the local state",
			Action: configSetAction,
		},
		{
			Name:   "init",
			Usage:  "initialize the local state with flags",
			Action: configInitAction,
			Flags: []cli.Flag{
				&rpcFlag,
				&accountFlag,
			},
		},
	},
}

func configAction(ctx *cli.Context) error {
	state, err := getState()
	if err != nil {
		return err
	}

	for key, value := range state {
		fmt.Println(key + ": " + value)
	}

	return nil
}

func configInitAction(c *cli.Context) error {
	return setState(map[string]string{
		"rpcserver": c.String("rpcserver"),
		"account":   c.String("account"),
	})
}

func configSetAction(c *cli.Context) error {
	if c.NArg() < 2 {
		return errors.New("key and value are missing")
	}

	key := c.Args().Get(0)
	value := c.Args().Get(1)

	err := setState(map[string]string{key: value})
	if err != nil {
		return err
	}

	fmt.Printf("%s %s has been set\n", key, value)

	return nil
}

func getAccountFromState() (string, error) {
	state, err := getState()
	if err != nil {
		return "", err
	}
	account, ok := state["account"]
	if !ok || account == "" {
		return "", errors.New("set account with `config set account`")
	}
	return account, nil
}

func getExchangeFromState() (uint64, error) {
	state, err := getState()
	if err != nil {
		return 0, err
	}
	exchange, ok := state["exchange_id"]
	if !ok {
		return 0, errors.New("set exchange with `config set exchange_id`")
	}
	return strconv.ParseUint(exchange, 10, 64)
}

func setExchangeIntoState(exchangeID uint64) error {
	return setState(map[string]string{
		"exchange_id": strconv.FormatUint(exchangeID, 10),
	})
}
