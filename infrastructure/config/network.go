// Package config holds the command-line configuration shared by the shapow
// tools.
package config

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/shapow/dagconfig"
	"github.com/kaspanet/shapow/domain/header"
	"github.com/kaspanet/shapow/domain/pow"
	"github.com/kaspanet/shapow/domain/sha256"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// NetworkFlags holds the network configuration, that is which network is selected.
type NetworkFlags struct {
	Testnet            bool   `long:"testnet" description:"Use the test network"`
	Regtest            bool   `long:"regtest" description:"Use the regression test network"`
	OverrideParamsFile string `long:"override-params-file" description:"Overrides genesis header fields (allowed only on regtest)"`

	ActiveNetParams *dagconfig.Params
}

// overrideParamsConfig is the format of the override params file. YAML is a
// superset of JSON, so JSON files are accepted too.
type overrideParamsConfig struct {
	Version    *uint32 `yaml:"version"`
	MerkleRoot *string `yaml:"merkleRoot"`
	Timestamp  *uint32 `yaml:"timestamp"`
	Bits       *uint32 `yaml:"bits"`
	Nonce      *uint32 `yaml:"nonce"`
}

// ResolveNetwork parses the network command line argument and sets NetParams accordingly.
// It returns error if more than one network was selected, nil otherwise.
func (networkFlags *NetworkFlags) ResolveNetwork(parser *flags.Parser) error {
	//NetParams holds the selected network parameters. Default value is main-net.
	networkFlags.ActiveNetParams = &dagconfig.MainnetParams
	// Multiple networks can't be selected simultaneously.
	numNets := 0
	if networkFlags.Testnet {
		numNets++
		networkFlags.ActiveNetParams = &dagconfig.TestnetParams
	}
	if networkFlags.Regtest {
		numNets++
		networkFlags.ActiveNetParams = &dagconfig.RegtestParams
	}
	if numNets > 1 {
		message := "Multiple networks parameters (testnet, regtest) cannot be used " +
			"together. Please choose only one network"
		err := errors.Errorf(message)
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return err
	}

	return networkFlags.overrideParams()
}

// NetParams returns the ActiveNetParams
func (networkFlags *NetworkFlags) NetParams() *dagconfig.Params {
	return networkFlags.ActiveNetParams
}

// overrideParams replaces ActiveNetParams with a copy whose genesis header
// carries the fields set in OverrideParamsFile.
func (networkFlags *NetworkFlags) overrideParams() error {
	if networkFlags.OverrideParamsFile == "" {
		return nil
	}

	if !networkFlags.Regtest {
		return errors.Errorf("override-params-file is allowed only when using regtest")
	}

	overrideParamsFile, err := os.Open(networkFlags.OverrideParamsFile)
	if err != nil {
		return errors.WithStack(err)
	}
	defer overrideParamsFile.Close()

	decoder := yaml.NewDecoder(overrideParamsFile)
	decoder.KnownFields(true)
	config := &overrideParamsConfig{}
	err = decoder.Decode(config)
	if err != nil {
		return errors.Wrapf(err, "couldn't decode %s", networkFlags.OverrideParamsFile)
	}

	params := *networkFlags.ActiveNetParams
	genesisHeader := *params.GenesisHeader

	if config.Version != nil {
		genesisHeader.Version = *config.Version
	}

	if config.MerkleRoot != nil {
		merkleRoot, err := sha256.NewDigestFromDisplayString(*config.MerkleRoot)
		if err != nil {
			return err
		}
		genesisHeader.MerkleRoot = merkleRoot
	}

	if config.Timestamp != nil {
		genesisHeader.Timestamp = *config.Timestamp
	}

	if config.Bits != nil {
		_, err := pow.CompactToTargetBytes(*config.Bits)
		if err != nil {
			return errors.Wrapf(err, "bits 0x%08x", *config.Bits)
		}
		genesisHeader.Bits = *config.Bits
		params.PowLimitBits = *config.Bits
		params.PowLimit = pow.CompactToBig(*config.Bits)
	}

	if config.Nonce != nil {
		genesisHeader.Nonce = *config.Nonce
	}

	genesisHash := genesisHeader.BlockHash()
	params.GenesisHeader = &genesisHeader
	params.GenesisHash = &genesisHash
	networkFlags.ActiveNetParams = &params
	return nil
}

// GenesisTemplate returns a copy of the active network's genesis header to
// mine from.
func (networkFlags *NetworkFlags) GenesisTemplate() header.BlockHeader {
	return *networkFlags.ActiveNetParams.GenesisHeader
}
