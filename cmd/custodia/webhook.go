package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/thanhpk/randstr"
	"github.com/urfave/cli/v2"
)

var webhook = cli.Command{
	Name:  "webhook",
	Usage: "manage webhook subscriptions",
	Subcommands: []*cli.Command{
		{
			Name:  "add",
			Usage: "add a webhook registered for some event",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "endpoint",
					Usage: "the endpoint where to notify the webhook",
				},
				&cli.StringFlag{
					Name:  "topic",
					Usage: "the topic for which the webhook gets notified",
				},
				&cli.StringFlag{
					Name:  "secret",
					Usage: "the eventual secret to authenticate requests",
				},
				&cli.BoolFlag{
					Name:  "gen_secret",
					Usage: "generate a random secret for this webhook",
				},
			},
			Action: webhookAddAction,
		},
		{
			Name:  "remove",
			Usage: "remove a webhook by id",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "id"},
				&cli.StringFlag{Name: "topic"},
			},
			Action: webhookRemoveAction,
		},
		{
			Name:  "list",
			Usage: "list the webhooks registered for a topic",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "topic"},
			},
			Action: webhookListAction,
		},
	},
}

func webhookAddAction(ctx *cli.Context) error {
	secret := ctx.String("secret")
	if ctx.Bool("gen_secret") {
		if secret != "" {
			return errors.New("secret and gen_secret are mutually exclusive")
		}
		secret = randstr.Hex(32)
	}

	body, err := json.Marshal(map[string]string{
		"topic":    ctx.String("topic"),
		"endpoint": ctx.String("endpoint"),
		"secret":   secret,
	})
	if err != nil {
		return err
	}

	resp, err := doRequest(http.MethodPost, "/v1/webhooks", body)
	if err != nil {
		return err
	}

	printRespJSON(resp)
	if ctx.Bool("gen_secret") {
		fmt.Println("secret:", secret)
	}
	return nil
}

func webhookListAction(ctx *cli.Context) error {
	path := "/v1/webhooks"
	if topic := ctx.String("topic"); topic != "" {
		path += "?topic=" + topic
	}

	resp, err := doRequest(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

func webhookRemoveAction(ctx *cli.Context) error {
	id := ctx.String("id")
	if id == "" {
		return errors.New("id is missing")
	}

	path := "/v1/webhooks/" + id
	if topic := ctx.String("topic"); topic != "" {
		path += "?topic=" + topic
	}

	resp, err := doRequest(http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}
