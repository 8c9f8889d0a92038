package main

import (
	"errors"
	"net/http"

	"github.com/urfave/cli/v2"
)

var tenant = cli.Command{
	Name:  "tenant",
	Usage: "manage tenant policy records",
	Subcommands: []*cli.Command{
		{
			Name:  "init",
			Usage: "onboard a new tenant, signed by the onboarding authority",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "tenant_id", Usage: "the 32-byte hex tenant id"},
				&cli.StringFlag{Name: "treasury", Usage: "the treasury identity receiving fees"},
				&cli.StringFlag{Name: "admin", Usage: "the tenant admin identity"},
				&cli.Uint64Flag{Name: "fee_bps", Usage: "the fee rate in basis points"},
				&signWithFlag,
			},
			Action: tenantInitAction,
		},
		{
			Name:  "get",
			Usage: "print a tenant record",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "tenant_id"},
			},
			Action: tenantGetAction,
		},
		{
			Name:   "list",
			Usage:  "print all tenant records",
			Action: tenantListAction,
		},
		{
			Name:  "update-treasury",
			Usage: "replace the tenant treasury, signed by the tenant admin",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "tenant_id"},
				&cli.StringFlag{Name: "new_treasury"},
				&signWithFlag,
			},
			Action: tenantUpdateTreasuryAction,
		},
		{
			Name:  "update-fee",
			Usage: "replace the tenant fee rate, signed by the tenant admin",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "tenant_id"},
				&cli.Uint64Flag{Name: "new_fee_bps"},
				&signWithFlag,
			},
			Action: tenantUpdateFeeAction,
		},
		{
			Name:  "update-asset-policy",
			Usage: "replace the tenant asset policy, signed by the tenant admin",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "tenant_id"},
				&cli.StringFlag{
					Name:  "new_policy",
					Usage: "one of allow_all, allowlist, block_all",
				},
				&signWithFlag,
			},
			Action: tenantUpdateAssetPolicyAction,
		},
	},
}

func tenantInitAction(ctx *cli.Context) error {
	resp, err := doSignedRequest(ctx, http.MethodPost, "/v1/tenants",
		map[string]interface{}{
			"tenant_id":        ctx.String("tenant_id"),
			"treasury":         ctx.String("treasury"),
			"admin":            ctx.String("admin"),
			"fee_basis_points": ctx.Uint64("fee_bps"),
		},
	)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

func tenantGetAction(ctx *cli.Context) error {
	tenantID := ctx.String("tenant_id")
	if tenantID == "" {
		return errors.New("tenant_id is missing")
	}

	resp, err := doRequest(http.MethodGet, "/v1/tenants/"+tenantID, nil)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

func tenantListAction(ctx *cli.Context) error {
	resp, err := doRequest(http.MethodGet, "/v1/tenants", nil)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

func tenantUpdateTreasuryAction(ctx *cli.Context) error {
	resp, err := doSignedRequest(ctx, http.MethodPut, "/v1/tenants/treasury",
		map[string]interface{}{
			"tenant_id":    ctx.String("tenant_id"),
			"new_treasury": ctx.String("new_treasury"),
		},
	)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

func tenantUpdateFeeAction(ctx *cli.Context) error {
	resp, err := doSignedRequest(ctx, http.MethodPut, "/v1/tenants/fee-rate",
		map[string]interface{}{
			"tenant_id":            ctx.String("tenant_id"),
			"new_fee_basis_points": ctx.Uint64("new_fee_bps"),
		},
	)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}

func tenantUpdateAssetPolicyAction(ctx *cli.Context) error {
	resp, err := doSignedRequest(ctx, http.MethodPut, "/v1/tenants/asset-policy",
		map[string]interface{}{
			"tenant_id":  ctx.String("tenant_id"),
			"new_policy": ctx.String("new_policy"),
		},
	)
	if err != nil {
		return err
	}
	printRespJSON(resp)
	return nil
}
