package main

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/urfave/cli/v2"
)

var escrowCmd = cli.Command{
	Name:  "escrow",
	Usage: "audit the funds held in escrow for a token",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "token",
			Usage:    "the account id of the token to audit",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "standard",
			Usage: "the standard of the token, either fungible or unique",
			Value: "",
		},
	},
	Action: escrowCheckAction,
}

func escrowCheckAction(ctx *cli.Context) error {
	route := fmt.Sprintf("/v1/escrow/%s", url.PathEscape(ctx.String("token")))
	if standard := ctx.String("standard"); standard != "" {
		route += "?standard=" + url.QueryEscape(standard)
	}

	resp, err := doRequest(http.MethodGet, route, nil)
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}
