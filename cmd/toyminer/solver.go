package main

import (
	"context"
	"math"

	"github.com/kaspanet/shapow/domain/header"
	"github.com/kaspanet/shapow/domain/hwminer"
	"github.com/kaspanet/shapow/domain/miner"
	"github.com/kaspanet/shapow/domain/sha256"
)

// solver finds a nonce for a header, starting at its Nonce field.
type solver interface {
	solve(ctx context.Context, h *header.BlockHeader, nonceRange uint32) (uint32, sha256.Digest, error)
	close()
}

type softwareSolver struct {
	workers int
}

func (s *softwareSolver) solve(ctx context.Context, h *header.BlockHeader, nonceRange uint32) (
	uint32, sha256.Digest, error) {

	result, err := miner.Search(ctx, &miner.SearchConfig{
		Template:   *h,
		StartNonce: h.Nonce,
		NonceRange: uint64(nonceRange),
		Workers:    s.workers,
		Criterion:  miner.BelowCompactTarget(h.Bits),
	})
	if err != nil {
		return 0, sha256.Digest{}, err
	}
	return result.Nonce, result.Hash, nil
}

func (s *softwareSolver) close() {}

// deviceSolver drives a hardware miner model through its registers the way
// the firmware does.
type deviceSolver struct {
	device *hwminer.Device
}

func (s *deviceSolver) solve(ctx context.Context, h *header.BlockHeader, nonceRange uint32) (
	uint32, sha256.Digest, error) {

	if nonceRange == 0 {
		nonceRange = math.MaxUint32
	}
	solution, err := hwminer.MineHeader(ctx, s.device, h, nonceRange, hwminer.DefaultPollInterval)
	if err != nil {
		return 0, sha256.Digest{}, err
	}
	return solution.Nonce, solution.Hash, nil
}

func (s *deviceSolver) close() {
	s.device.Close()
}

func newSolver(cfg *configFlags) solver {
	if cfg.Device {
		return &deviceSolver{device: hwminer.NewDevice(cfg.Workers)}
	}
	return &softwareSolver{workers: cfg.Workers}
}
