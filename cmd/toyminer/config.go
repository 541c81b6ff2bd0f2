package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/btcsuite/btcutil"
	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/shapow/domain/header"
	"github.com/kaspanet/shapow/domain/pow"
	"github.com/kaspanet/shapow/domain/sha256"
	"github.com/kaspanet/shapow/infrastructure/config"
	"github.com/kaspanet/shapow/infrastructure/logger"
	"github.com/kaspanet/shapow/version"
	"github.com/pkg/errors"
)

const (
	defaultLogFilename    = "toyminer.log"
	defaultErrLogFilename = "toyminer_err.log"
)

var (
	// Default configuration options
	defaultHomeDir = btcutil.AppDataDir("toyminer", false)
	defaultLogDir  = filepath.Join(defaultHomeDir, "logs")
)

type configFlags struct {
	ShowVersion    bool   `short:"V" long:"version" description:"Display version information and exit"`
	NumberOfBlocks uint64 `short:"n" long:"numblocks" default:"1" description:"Number of blocks to mine. Zero mines until the process is interrupted."`
	Device         bool   `long:"device" description:"Mine through the register model of the hardware miner instead of the software worker pool"`
	Workers        int    `long:"workers" description:"Number of hashing goroutines. Defaults to the number of CPUs"`
	StartNonce     uint32 `long:"startnonce" description:"First nonce tried for each block"`
	NonceRange     uint32 `long:"noncerange" description:"Number of nonces tried for each block. Zero tries every nonce from startnonce on"`
	BlockVersion   uint32 `long:"blockversion" description:"Block version. Defaults to the genesis block's"`
	PrevHash       string `long:"prevhash" description:"Previous block hash, in display order. Defaults to the genesis block's"`
	MerkleRoot     string `long:"merkleroot" description:"Merkle root, in display order. Defaults to the genesis block's"`
	Timestamp      uint32 `long:"timestamp" description:"Block time in seconds since the unix epoch. Defaults to the genesis block's"`
	Bits           string `long:"bits" description:"Compact target in hex, such as 2000ffff. Defaults to the genesis block's"`
	BlocksFile     string `long:"blocksfile" description:"Append the hex of every mined header to this file"`
	LogDir         string `long:"logdir" description:"Directory to log output"`
	LogLevel       string `long:"loglevel" default:"info" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} or SUBSYSTEM=level pairs"`
	Profile        string `long:"profile" description:"Enable HTTP profiling on given port -- NOTE port must be between 1024 and 65536"`
	config.NetworkFlags

	template header.BlockHeader
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

	err = cfg.resolveTemplate()
	if err != nil {
		return nil, err
	}

	if cfg.Workers < 1 {
		return nil, errors.Errorf("--workers must be positive, got %d", cfg.Workers)
	}

	if cfg.Profile != "" {
		profilePort, err := strconv.Atoi(cfg.Profile)
		if err != nil || profilePort < 1024 || profilePort > 65535 {
			return nil, errors.New("The profile port must be between 1024 and 65535")
		}
	}

	initLog(filepath.Join(cfg.LogDir, defaultLogFilename), filepath.Join(cfg.LogDir, defaultErrLogFilename))

	err = logger.ParseAndSetLogLevels(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveTemplate builds the first header to mine from the network's genesis
// header and the header flags that were set.
func (cfg *configFlags) resolveTemplate() error {
	template := cfg.GenesisTemplate()
	template.Nonce = cfg.StartNonce

	if cfg.BlockVersion != 0 {
		template.Version = cfg.BlockVersion
	}
	if cfg.Timestamp != 0 {
		template.Timestamp = cfg.Timestamp
	}
	if cfg.PrevHash != "" {
		prevHash, err := sha256.NewDigestFromDisplayString(cfg.PrevHash)
		if err != nil {
			return errors.Wrap(err, "--prevhash")
		}
		template.PrevHash = prevHash
	}
	if cfg.MerkleRoot != "" {
		merkleRoot, err := sha256.NewDigestFromDisplayString(cfg.MerkleRoot)
		if err != nil {
			return errors.Wrap(err, "--merkleroot")
		}
		template.MerkleRoot = merkleRoot
	}
	if cfg.Bits != "" {
		bits, err := strconv.ParseUint(strings.TrimPrefix(cfg.Bits, "0x"), 16, 32)
		if err != nil {
			return errors.Wrapf(err, "--bits %s", cfg.Bits)
		}
		_, err = pow.CompactToTargetBytes(uint32(bits))
		if err != nil {
			return errors.Wrapf(err, "--bits %s", cfg.Bits)
		}
		template.Bits = uint32(bits)
	}

	cfg.template = template
	return nil
}
