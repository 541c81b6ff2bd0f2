package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/btcsuite/btcutil"
	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/shapow/infrastructure/config"
	"github.com/kaspanet/shapow/infrastructure/logger"
	"github.com/kaspanet/shapow/version"
	"github.com/pkg/errors"
)

const (
	defaultLogFilename    = "shavectors.log"
	defaultErrLogFilename = "shavectors_err.log"

	formatText    = "text"
	formatVerilog = "verilog"
	formatYAML    = "yaml"
	formatCBOR    = "cbor"
)

var (
	// Default configuration options
	defaultHomeDir = btcutil.AppDataDir("shavectors", false)
	defaultLogDir  = filepath.Join(defaultHomeDir, "logs")
)

type configFlags struct {
	ShowVersion bool   `short:"V" long:"version" description:"Display version information and exit"`
	Format      string `short:"f" long:"format" choice:"text" choice:"verilog" choice:"yaml" choice:"cbor" default:"text" description:"Output format"`
	Output      string `short:"o" long:"output" description:"Write the vectors to this file instead of stdout"`
	Mine        bool   `long:"mine" description:"Include the mini mining example"`
	ZeroBytes   int    `long:"zerobytes" default:"1" description:"Leading zero bytes required by the mini mining example"`
	MaxNonce    uint32 `long:"maxnonce" default:"1000000" description:"Number of nonces the mini mining example tries, starting from zero. Must be positive"`
	Workers     int    `long:"workers" description:"Number of mining goroutines. Defaults to the number of CPUs"`
	Trace       string `long:"trace" description:"Include the per-round compression trace of the first block of this message"`
	LogDir      string `long:"logdir" description:"Directory to log output"`
	LogLevel    string `long:"loglevel" default:"info" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical}"`
	Verbose     bool   `short:"v" long:"verbose" description:"Also write log messages to stdout"`
	config.NetworkFlags
}

func parseConfig() (*configFlags, error) {
	cfg := &configFlags{
		LogDir:  defaultLogDir,
		Workers: runtime.NumCPU(),
	}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)
	_, err := parser.Parse()

	// Show the version and exit if the version flag was specified.
	if cfg.ShowVersion {
		appName := filepath.Base(os.Args[0])
		appName = strings.TrimSuffix(appName, filepath.Ext(appName))
		fmt.Println(appName, "version", version.Version())
		os.Exit(0)
	}

	if err != nil {
		return nil, err
	}

	err = cfg.ResolveNetwork(parser)
	if err != nil {
		return nil, err
	}

	err = validateConfig(cfg)
	if err != nil {
		return nil, err
	}

	initLog(filepath.Join(cfg.LogDir, defaultLogFilename),
		filepath.Join(cfg.LogDir, defaultErrLogFilename), cfg.Verbose)

	err = logger.ParseAndSetLogLevels(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateConfig(cfg *configFlags) error {
	if cfg.ZeroBytes < 1 || cfg.ZeroBytes > 32 {
		return errors.Errorf("--zerobytes must be between 1 and 32, got %d", cfg.ZeroBytes)
	}
	if cfg.Mine && cfg.MaxNonce == 0 {
		return errors.New("--maxnonce must be positive when --mine is set")
	}
	if cfg.Workers < 1 {
		return errors.Errorf("--workers must be positive, got %d", cfg.Workers)
	}
	if cfg.Verbose && cfg.Output == "" {
		return errors.New("--verbose requires --output, log messages would mix with the vectors")
	}
	return nil
}
