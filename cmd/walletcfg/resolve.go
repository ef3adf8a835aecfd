package main

import (
	"fmt"

	"github.com/stackmate/walletcfg/internal/config"
	"github.com/stackmate/walletcfg/internal/core/application"
	"github.com/urfave/cli/v2"
)

var resolve = cli.Command{
	Name:  "resolve",
	Usage: "derive deposit and change descriptors and connect to the node",
	Flags: []cli.Flag{
		&descriptorFlag,
		&nodeFlag,
		&socks5Flag,
		&offlineFlag,
	},
	Action: resolveAction,
}

type resolveResponse struct {
	DepositDescriptor string `json:"deposit_descriptor"`
	ChangeDescriptor  string `json:"change_descriptor"`
	Network           string `json:"network"`
	Backend           string `json:"backend,omitempty"`
	Height            uint32 `json:"height,omitempty"`
}

func resolveAction(ctx *cli.Context) error {
	descriptor := ctx.String(descriptorFlag.Name)
	if descriptor == "" {
		return &invalidUsageError{ctx, ctx.Command.Name}
	}
	overrideConfig(ctx, nodeFlag.Name, config.NodeAddressKey)
	overrideConfig(ctx, socks5Flag.Name, config.Socks5ProxyKey)
	if ctx.IsSet(offlineFlag.Name) {
		config.Set(config.OfflineKey, ctx.Bool(offlineFlag.Name))
	}

	svc := newConfigService()

	var (
		walletConfig *application.WalletConfig
		err          error
	)
	if config.GetBool(config.OfflineKey) {
		walletConfig, err = svc.NewOfflineWalletConfig(descriptor)
	} else {
		walletConfig, err = svc.NewWalletConfig(
			ctx.Context, descriptor,
			config.GetString(config.NodeAddressKey),
			config.GetString(config.Socks5ProxyKey),
		)
	}
	if err != nil {
		return err
	}
	defer walletConfig.Close()

	resp := resolveResponse{
		DepositDescriptor: walletConfig.DepositDescriptor,
		ChangeDescriptor:  walletConfig.ChangeDescriptor,
		Network:           walletConfig.Network.String(),
	}
	if !walletConfig.IsOffline() {
		height, err := walletConfig.Client.GetHeight(ctx.Context)
		if err != nil {
			return fmt.Errorf("failed to fetch chain height: %w", err)
		}
		resp.Backend = string(walletConfig.Client.Backend())
		resp.Height = height
	}

	return printJSON(ctx, resp)
}
