package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/urfave/cli/v2"
)

var (
	webhookCmd = cli.Command{
		Name:  "webhook",
		Usage: "manage the webhooks notified about the events of the daemon",
		Subcommands: []*cli.Command{
			webhookAddCmd, webhookRemoveCmd,
		},
	}

	webhookAddCmd = &cli.Command{
		Name:  "add",
		Usage: "register a webhook for a topic",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name: "topic",
				Usage: "the topic to subscribe to, one of exchange.created, " +
					"offer.placed, offer.canceled, offer.filled or * for all",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "endpoint",
				Usage:    "the HTTP endpoint to be invoked for each event",
				Required: true,
			},
		},
		Action: addWebhookAction,
	}
	webhookRemoveCmd = &cli.Command{
		Name:  "remove",
		Usage: "unregister a webhook",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "topic",
				Usage:    "the topic of the subscription",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "id",
				Usage:    "the id of the subscription to remove",
				Required: true,
			},
		},
		Action: removeWebhookAction,
	}
)

func addWebhookAction(ctx *cli.Context) error {
	resp, err := doRequest(http.MethodPost, "/v1/subscriptions", map[string]string{
		"topic":    ctx.String("topic"),
		"endpoint": ctx.String("endpoint"),
	})
	if err != nil {
		return err
	}

	reply := struct {
		Id string `json:"id"`
	}{}
	if err := json.Unmarshal(resp, &reply); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("webhook registered with id " + reply.Id)
	return nil
}

func removeWebhookAction(ctx *cli.Context) error {
	route := fmt.Sprintf(
		"/v1/subscriptions/%s/%s",
		url.PathEscape(ctx.String("topic")), url.PathEscape(ctx.String("id")),
	)
	if _, err := doRequest(http.MethodDelete, route, nil); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("webhook removed")
	return nil
}
