package main

import (
	"errors"
	"net/http"

	"github.com/urfave/cli/v2"
)

var wallet = cli.Command{
	Name:  "wallet",
	Usage: "manage owner/guardian wallet bindings",
	Subcommands: []*cli.Command{
		{
			Name:  "create",
			Usage: "create a wallet binding, signed by the owner",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "owner", Usage: "the owner identity"},
				&cli.StringFlag{Name: "guardian", Usage: "the guardian identity"},
				&signWithFlag,
			},
			Action: walletCreateAction,
		},
		{
			Name:  "get",
			Usage: "print a wallet record",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "address"},
			},
			Action: walletGetAction,
		},
		{
			Name:  "vaults",
			Usage: "print all the vaults of a wallet",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "address"},
			},
			Action: walletVaultsAction,
		},
		{
			Name:  "rotate-guardian",
			Usage: "replace the guardian, co-signed by owner and current guardian",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "owner"},
				&cli.StringFlag{Name: "new_guardian"},
				&signWithFlag,
			},
			Action: walletRotateGuardianAction,
		},
		{
			Name:  "close",
			Usage: "close a wallet, co-signed by owner and guardian",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "owner"},
				&signWithFlag,
			},
			Action: walletCloseAction,
		},
	},
}

func walletCreateAction(ctx *cli.Context) error {
	resp, err := doSignedRequest(ctx, http.MethodPost, "/v1/wallets",
		map[string]interface{}{
			"owner":    ctx.String("owner"),
			"guardian": ctx.String("guardian"),
		},
	)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

func walletGetAction(ctx *cli.Context) error {
	address := ctx.String("address")
	if address == "" {
		return errors.New("address is missing")
	}

	resp, err := doRequest(http.MethodGet, "/v1/wallets/"+address, nil)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

func walletVaultsAction(ctx *cli.Context) error {
	address := ctx.String("address")
	if address == "" {
		return errors.New("address is missing")
	}

	resp, err := doRequest(http.MethodGet, "/v1/wallets/"+address+"/vaults", nil)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

func walletRotateGuardianAction(ctx *cli.Context) error {
	resp, err := doSignedRequest(ctx, http.MethodPut, "/v1/wallets/guardian",
		map[string]interface{}{
			"owner":        ctx.String("owner"),
			"new_guardian": ctx.String("new_guardian"),
		},
	)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

func walletCloseAction(ctx *cli.Context) error {
	resp, err := doSignedRequest(ctx, http.MethodPost, "/v1/wallets/close",
		map[string]interface{}{
			"owner": ctx.String("owner"),
		},
	)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}
