package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/urfave/cli/v2"
)

type tokenRequest struct {
	AccountID string `json:"account_id"`
	Standard  string `json:"standard,omitempty"`
}

var (
	exchangeCmd = cli.Command{
		Name:  "exchange",
		Usage: "manage the exchanges of the daemon",
		Subcommands: []*cli.Command{
			exchangeNewCmd, exchangeInfoCmd, exchangeListCmd, exchangeOffersCmd,
		},
	}

	exchangeNewCmd = &cli.Command{
		Name:  "new",
		Usage: "create a new exchange with an initial selling offer",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "base_token",
				Usage:    "the account id of the base token",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "quote_token",
				Usage:    "the account id of the quote token",
				Required: true,
			},
			&cli.Uint64Flag{
				Name:     "amount",
				Usage:    "the amount of base token to put up for sale",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "price",
				Usage:    "the amount of quote token asked per unit of base token",
				Required: true,
			},
		},
		Action: newExchangeAction,
	}
	exchangeInfoCmd = &cli.Command{
		Name:   "info",
		Usage:  "get info about the current exchange",
		Action: exchangeInfoAction,
	}
	exchangeListCmd = &cli.Command{
		Name:   "list",
		Usage:  "list all the exchanges of the daemon",
		Action: exchangeListAction,
	}
	exchangeOffersCmd = &cli.Command{
		Name:   "offers",
		Usage:  "list the open offers of the current exchange",
		Action: exchangeOffersAction,
	}
)

func newExchangeAction(ctx *cli.Context) error {
	account, err := getAccountFromState()
	if err != nil {
		return err
	}

	resp, err := doRequest(http.MethodPost, "/v1/exchanges", map[string]interface{}{
		"creator":        account,
		"base_token":     tokenRequest{AccountID: ctx.String("base_token")},
		"quote_token":    tokenRequest{AccountID: ctx.String("quote_token")},
		"initial_amount": ctx.Uint64("amount"),
		"price":          ctx.String("price"),
	})
	if err != nil {
		return err
	}

	reply := struct {
		ExchangeID uint64 `json:"exchange_id"`
	}{}
	if err := json.Unmarshal(resp, &reply); err != nil {
		return err
	}
	if err := setExchangeIntoState(reply.ExchangeID); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("exchange created")
	printRespJSON(resp)
	return nil
}

func exchangeInfoAction(ctx *cli.Context) error {
	exchangeID, err := getExchangeFromState()
	if err != nil {
		return err
	}

	resp, err := doRequest(
		http.MethodGet, fmt.Sprintf("/v1/exchanges/%d", exchangeID), nil,
	)
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}

func exchangeListAction(ctx *cli.Context) error {
	resp, err := doRequest(http.MethodGet, "/v1/exchanges", nil)
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}

func exchangeOffersAction(ctx *cli.Context) error {
	exchangeID, err := getExchangeFromState()
	if err != nil {
		return err
	}

	resp, err := doRequest(
		http.MethodGet, fmt.Sprintf("/v1/exchanges/%d/offers", exchangeID), nil,
	)
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}
