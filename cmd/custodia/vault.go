package main

import (
	"errors"
	"net/http"

	"github.com/urfave/cli/v2"
)

var vault = cli.Command{
	Name:  "vault",
	Usage: "manage custodial vaults and fund movements",
	Subcommands: []*cli.Command{
		{
			Name:  "init",
			Usage: "create a vault, co-signed by owner and guardian",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "tenant_id"},
				&cli.StringFlag{Name: "owner"},
				&cli.StringFlag{Name: "asset"},
				&signWithFlag,
			},
			Action: vaultInitAction,
		},
		{
			Name:  "deposit",
			Usage: "deposit funds into custody, signed by the owner",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "tenant_id"},
				&cli.StringFlag{Name: "owner"},
				&cli.StringFlag{Name: "asset"},
				&cli.Uint64Flag{Name: "amount"},
				&signWithFlag,
			},
			Action: vaultDepositAction,
		},
		{
			Name:  "withdraw",
			Usage: "withdraw funds from custody, co-signed by owner and guardian",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "tenant_id"},
				&cli.StringFlag{Name: "owner"},
				&cli.StringFlag{Name: "asset"},
				&cli.Uint64Flag{Name: "amount"},
				&cli.StringFlag{Name: "recipient"},
				&signWithFlag,
			},
			Action: vaultWithdrawAction,
		},
		{
			Name:   "pause",
			Usage:  "pause a vault, co-signed by owner and guardian",
			Flags:  vaultStatusFlags(),
			Action: vaultPauseAction,
		},
		{
			Name:   "resume",
			Usage:  "resume a paused vault, co-signed by owner and guardian",
			Flags:  vaultStatusFlags(),
			Action: vaultResumeAction,
		},
		{
			Name:   "close",
			Usage:  "close a vault permanently, co-signed by owner and guardian",
			Flags:  vaultStatusFlags(),
			Action: vaultCloseAction,
		},
		{
			Name:  "get",
			Usage: "print a vault record with its custodial balance",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "address"},
			},
			Action: vaultGetAction,
		},
	},
}

func vaultStatusFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "owner"},
		&cli.StringFlag{Name: "asset"},
		&signWithFlag,
	}
}

func vaultInitAction(ctx *cli.Context) error {
	resp, err := doSignedRequest(ctx, http.MethodPost, "/v1/vaults",
		map[string]interface{}{
			"tenant_id": ctx.String("tenant_id"),
			"owner":     ctx.String("owner"),
			"asset":     ctx.String("asset"),
		},
	)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

func vaultDepositAction(ctx *cli.Context) error {
	resp, err := doSignedRequest(ctx, http.MethodPost, "/v1/vaults/deposit",
		map[string]interface{}{
			"tenant_id": ctx.String("tenant_id"),
			"owner":     ctx.String("owner"),
			"asset":     ctx.String("asset"),
			"amount":    ctx.Uint64("amount"),
		},
	)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

func vaultWithdrawAction(ctx *cli.Context) error {
	resp, err := doSignedRequest(ctx, http.MethodPost, "/v1/vaults/withdraw",
		map[string]interface{}{
			"tenant_id": ctx.String("tenant_id"),
			"owner":     ctx.String("owner"),
			"asset":     ctx.String("asset"),
			"amount":    ctx.Uint64("amount"),
			"recipient": ctx.String("recipient"),
		},
	)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

func vaultPauseAction(ctx *cli.Context) error {
	return vaultStatusAction(ctx, "/v1/vaults/pause")
}

func vaultResumeAction(ctx *cli.Context) error {
	return vaultStatusAction(ctx, "/v1/vaults/resume")
}

func vaultCloseAction(ctx *cli.Context) error {
	return vaultStatusAction(ctx, "/v1/vaults/close")
}

func vaultStatusAction(ctx *cli.Context, path string) error {
	resp, err := doSignedRequest(ctx, http.MethodPost, path,
		map[string]interface{}{
			"owner": ctx.String("owner"),
			"asset": ctx.String("asset"),
		},
	)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

func vaultGetAction(ctx *cli.Context) error {
	address := ctx.String("address")
	if address == "" {
		return errors.New("address is missing")
	}

	resp, err := doRequest(http.MethodGet, "/v1/vaults/"+address, nil)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}
