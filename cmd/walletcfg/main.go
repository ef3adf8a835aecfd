package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/stackmate/walletcfg/internal/config"
	"github.com/stackmate/walletcfg/internal/core/application"
	"github.com/stackmate/walletcfg/internal/infrastructure/blockchain"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "walletcfg"
	app.Usage = "Resolve descriptor wallet configs and probe blockchain backends"
	app.Before = initConfig
	app.Commands = append(
		app.Commands,
		&resolve,
		&check,
		&monitor,
	)
	return app
}

func initConfig(_ *cli.Context) error {
	if err := config.InitConfig(); err != nil {
		return err
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))
	return nil
}

func newConfigService() application.ConfigService {
	return application.NewConfigService(blockchain.NewClientFactory())
}

// overrideConfig replaces the configured value of key with that of the
// given flag, if set.
func overrideConfig(ctx *cli.Context, flag, key string) {
	if ctx.IsSet(flag) {
		config.Set(key, ctx.String(flag))
	}
}

func printJSON(ctx *cli.Context, v interface{}) error {
	buf, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return fmt.Errorf("unable to encode response: %w", err)
	}
	fmt.Fprintln(ctx.App.Writer, string(buf))
	return nil
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[walletcfg] %v\n", err)
	}
	os.Exit(1)
}
