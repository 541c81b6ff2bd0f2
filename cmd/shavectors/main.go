package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kaspanet/shapow/infrastructure/logger"
	"github.com/kaspanet/shapow/infrastructure/os/signal"
	"github.com/kaspanet/shapow/util/panics"
	"github.com/kaspanet/shapow/version"
	"github.com/pkg/errors"
)

func main() {
	defer panics.HandlePanic(log, "MAIN", nil)
	interrupt := signal.InterruptListener()

	cfg, err := parseConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing command-line arguments: %s\n", err)
		os.Exit(1)
	}
	defer logger.BackendLog.Close()

	log.Infof("Version %s", version.Version())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	spawn("main-interrupt", func() {
		select {
		case <-interrupt:
			cancel()
		case <-ctx.Done():
		}
	})

	err = run(ctx, cfg)
	if err != nil {
		log.Errorf("%+v", err)
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		logger.BackendLog.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *configFlags) error {
	suite, err := buildSuite(ctx, cfg)
	if err != nil {
		return err
	}

	if cfg.Output == "" {
		return render(os.Stdout, cfg.Format, suite)
	}

	file, err := os.Create(cfg.Output)
	if err != nil {
		return errors.WithStack(err)
	}
	err = render(file, cfg.Format, suite)
	if err != nil {
		file.Close()
		return err
	}
	log.Infof("Wrote %s vectors to %s", cfg.Format, cfg.Output)
	return errors.WithStack(file.Close())
}
