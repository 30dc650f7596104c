package main

import (
	"fmt"
	"net/http"

	"github.com/urfave/cli/v2"
)

var (
	offerCmd = cli.Command{
		Name:  "offer",
		Usage: "manage the offers of the current exchange",
		Subcommands: []*cli.Command{
			offerPlaceCmd, offerCancelCmd, offerBuyCmd, offerSellCmd,
		},
	}

	offerPlaceCmd = &cli.Command{
		Name:  "place",
		Usage: "place a new resting offer on the current exchange",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "side",
				Usage:    "the side of the offer, either sell or buy",
				Required: true,
			},
			&cli.Uint64Flag{
				Name:     "amount",
				Usage:    "the amount of base token to trade",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "price",
				Usage:    "the amount of quote token asked per unit of base token",
				Required: true,
			},
		},
		Action: placeOfferAction,
	}
	offerCancelCmd = &cli.Command{
		Name:  "cancel",
		Usage: "cancel an offer you own and get the escrowed funds back",
		Flags: []cli.Flag{
			&cli.Uint64Flag{
				Name:     "offer_id",
				Usage:    "the id of the offer to cancel",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "side",
				Usage:    "the side of the offer, either sell or buy",
				Required: true,
			},
		},
		Action: cancelOfferAction,
	}
	offerBuyCmd = &cli.Command{
		Name:  "buy",
		Usage: "buy some base token from a selling offer",
		Flags: []cli.Flag{
			&cli.Uint64Flag{
				Name:     "offer_id",
				Usage:    "the id of the selling offer to buy from",
				Required: true,
			},
			&cli.Uint64Flag{
				Name:     "amount",
				Usage:    "the amount of base token to buy",
				Required: true,
			},
		},
		Action: buyFromOfferAction,
	}
	offerSellCmd = &cli.Command{
		Name:  "sell",
		Usage: "sell some base token to a buying offer",
		Flags: []cli.Flag{
			&cli.Uint64Flag{
				Name:     "offer_id",
				Usage:    "the id of the buying offer to sell to",
				Required: true,
			},
			&cli.Uint64Flag{
				Name:     "amount",
				Usage:    "the amount of base token to sell",
				Required: true,
			},
		},
		Action: sellFromOfferAction,
	}
)

func placeOfferAction(ctx *cli.Context) error {
	account, err := getAccountFromState()
	if err != nil {
		return err
	}
	exchangeID, err := getExchangeFromState()
	if err != nil {
		return err
	}

	resp, err := doRequest(
		http.MethodPost,
		fmt.Sprintf("/v1/exchanges/%d/offers", exchangeID),
		map[string]interface{}{
			"side":   ctx.String("side"),
			"owner":  account,
			"amount": ctx.Uint64("amount"),
			"price":  ctx.String("price"),
		},
	)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("offer placed")
	printRespJSON(resp)
	return nil
}

func cancelOfferAction(ctx *cli.Context) error {
	account, err := getAccountFromState()
	if err != nil {
		return err
	}
	exchangeID, err := getExchangeFromState()
	if err != nil {
		return err
	}

	if _, err := doRequest(
		http.MethodPost,
		fmt.Sprintf(
			"/v1/exchanges/%d/offers/%d/cancel", exchangeID, ctx.Uint64("offer_id"),
		),
		map[string]interface{}{
			"side":      ctx.String("side"),
			"requester": account,
		},
	); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("offer canceled")
	return nil
}

func buyFromOfferAction(ctx *cli.Context) error {
	account, err := getAccountFromState()
	if err != nil {
		return err
	}
	exchangeID, err := getExchangeFromState()
	if err != nil {
		return err
	}

	if _, err := doRequest(
		http.MethodPost,
		fmt.Sprintf(
			"/v1/exchanges/%d/offers/%d/buy", exchangeID, ctx.Uint64("offer_id"),
		),
		map[string]interface{}{
			"buyer":  account,
			"amount": ctx.Uint64("amount"),
		},
	); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("offer filled")
	return nil
}

func sellFromOfferAction(ctx *cli.Context) error {
	account, err := getAccountFromState()
	if err != nil {
		return err
	}
	exchangeID, err := getExchangeFromState()
	if err != nil {
		return err
	}

	if _, err := doRequest(
		http.MethodPost,
		fmt.Sprintf(
			"/v1/exchanges/%d/offers/%d/sell", exchangeID, ctx.Uint64("offer_id"),
		),
		map[string]interface{}{
			"seller": account,
			"amount": ctx.Uint64("amount"),
		},
	); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("offer filled")
	return nil
}
