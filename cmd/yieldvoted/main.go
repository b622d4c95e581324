package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iov-one/yieldvote"
	"github.com/iov-one/yieldvote/app"
	"github.com/iov-one/yieldvote/errors"
	"github.com/iov-one/yieldvote/keeper"
	"github.com/iov-one/yieldvote/store"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/urfave/cli/v2"
)

const configFlagName = "config"

var configFlag = &cli.StringFlag{
	Name:    configFlagName,
	Usage:   "path to the configuration file (yaml, toml or json)",
	EnvVars: []string{envPrefix + "_CONFIG"},
}

func main() {
	a := &cli.App{
		Name:    "yieldvoted",
		Usage:   "distribute yield between projects by holder votes",
		Version: yieldvote.Version(),
		Flags:   []cli.Flag{configFlag},
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "start producing blocks and distributing yield",
				Action: runAction,
			},
			{
				Name:   "config",
				Usage:  "print the effective configuration",
				Action: configAction,
			},
		},
	}
	if err := a.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error %d: %+v\n", errors.Code(err), err)
		os.Exit(1)
	}
}

func configAction(c *cli.Context) error {
	conf, err := loadConfig(viper.New(), c.String(configFlagName))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(conf)
}

func runAction(c *cli.Context) error {
	conf, err := loadConfig(viper.New(), c.String(configFlagName))
	if err != nil {
		return err
	}
	logger, err := newLogger(conf.LogLevel)
	if err != nil {
		return err
	}
	gen, err := app.LoadGenesis(conf.Genesis)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	clock := newBlockClock(1, conf.BlockInterval)
	svc := app.NewService(store.MemStore(), clock, logger.With("module", "app"))
	if err := svc.InitChain(context.Background(), gen); err != nil {
		return errors.Wrap(err, "init chain")
	}

	k := keeper.NewKeeper(svc, conf.KeeperInterval, logger)
	if err := k.Start(context.Background()); err != nil {
		return err
	}
	defer k.Stop()

	logger.Info("started", "engine", svc.EngineAddress(), "genesis", conf.Genesis)
	clock.Run(ctx, func(height int64) {
		if conf.YieldPerBlock == 0 {
			return
		}
		if err := svc.AccrueYield(context.Background(), conf.YieldPerBlock); err != nil {
			logger.Error("cannot accrue yield", "height", height, "err", err)
		}
	})
	logger.Info("stopped", "height", clock.Height())
	return nil
}

func newLogger(level string) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout))
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return log.NewFilter(logger, opt), nil
}
