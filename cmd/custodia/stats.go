package main

import (
	"encoding/json"
	"net/http"

	"github.com/urfave/cli/v2"
)

var stats = cli.Command{
	Name:   "stats",
	Usage:  "print a snapshot of the custody state",
	Action: statsAction,
}

var faucet = cli.Command{
	Name:  "faucet",
	Usage: "fund an account on a local daemon run with the faucet enabled",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "account", Usage: "the identity to credit"},
		&cli.StringFlag{Name: "asset"},
		&cli.Uint64Flag{Name: "amount"},
	},
	Action: faucetAction,
}

func statsAction(ctx *cli.Context) error {
	resp, err := doRequest(http.MethodGet, "/v1/stats", nil)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

func faucetAction(ctx *cli.Context) error {
	body, err := json.Marshal(map[string]interface{}{
		"account": ctx.String("account"),
		"asset":   ctx.String("asset"),
		"amount":  ctx.Uint64("amount"),
	})
	if err != nil {
		return err
	}

	resp, err := doRequest(http.MethodPost, "/v1/faucet", body)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}
