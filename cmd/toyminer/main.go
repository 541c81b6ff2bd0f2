package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kaspanet/shapow/infrastructure/logger"
	"github.com/kaspanet/shapow/infrastructure/os/signal"
	"github.com/kaspanet/shapow/util/panics"
	"github.com/kaspanet/shapow/util/profiling"
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

	// Show version at startup.
	log.Infof("Version %s", version.Version())
	log.Infof("Mining on %s", cfg.NetParams().Name)

	// Enable http profiling server if requested.
	if cfg.Profile != "" {
		profiling.Start(cfg.Profile, log)
	}

	s := newSolver(cfg)
	defer s.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	doneChan := make(chan struct{})
	spawn("mineLoop", func() {
		err := mineLoop(ctx, s, cfg.template, cfg.NumberOfBlocks, cfg.NonceRange, cfg.BlocksFile)
		if err != nil && !errors.Is(err, context.Canceled) {
			panic(errors.Errorf("Error in mine loop: %+v", err))
		}
		close(doneChan)
	})

	select {
	case <-doneChan:
	case <-interrupt:
		cancel()
		<-doneChan
	}
}
