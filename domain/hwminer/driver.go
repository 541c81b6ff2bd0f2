package hwminer

import (
	"context"
	"math"
	"time"

	"github.com/kaspanet/shapow/domain/header"
	"github.com/kaspanet/shapow/domain/miner"
	"github.com/kaspanet/shapow/domain/pow"
	"github.com/kaspanet/shapow/domain/sha256"
	"github.com/kaspanet/shapow/util/binaryserializer"
	"github.com/pkg/errors"
)

// DefaultPollInterval is how often WaitForResult reads CTRL when no interval
// is given.
const DefaultPollInterval = time.Millisecond

// Solution is a nonce found by the miner.
type Solution struct {
	Nonce uint32
	Hash  sha256.Digest
}

// LoadHeader writes the serialized header to the HEADER registers, one
// little-endian word at a time. The header nonce is the first nonce searched.
func LoadHeader(bus Bus, h *header.BlockHeader) error {
	raw := h.Serialize()
	words, err := binaryserializer.Words(raw[:])
	if err != nil {
		return err
	}
	for i, word := range words {
		err := bus.Write32(HeaderAddress(i), word)
		if err != nil {
			return err
		}
	}
	return nil
}

// SetTarget writes a little-endian 32-byte target to the TARGET registers.
func SetTarget(bus Bus, target [pow.TargetSize]byte) error {
	words, err := binaryserializer.Words(target[:])
	if err != nil {
		return err
	}
	for i, word := range words {
		err := bus.Write32(TargetAddress(i), word)
		if err != nil {
			return err
		}
	}
	return nil
}

// StartMining sets MAX_NONCE and starts a search.
func StartMining(bus Bus, maxNonce uint32) error {
	err := bus.Write32(MaxNonceAddress(), maxNonce)
	if err != nil {
		return err
	}
	return bus.Write32(CtrlAddress(), CtrlStart)
}

// IsMiningDone returns true once the last search has ended, whether or not it
// found a nonce.
func IsMiningDone(bus Bus) (bool, error) {
	status, err := bus.Read32(CtrlAddress())
	if err != nil {
		return false, err
	}
	return status&(CtrlFound|CtrlExhausted) != 0, nil
}

// WaitForResult polls CTRL every pollInterval until the miner is no longer
// busy, and reports whether it found a nonce.
func WaitForResult(ctx context.Context, bus Bus, pollInterval time.Duration) (found bool, err error) {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		status, err := bus.Read32(CtrlAddress())
		if err != nil {
			return false, err
		}
		if status&CtrlBusy == 0 {
			return status&CtrlFound != 0, nil
		}
		select {
		case <-ctx.Done():
			return false, errors.WithStack(ctx.Err())
		case <-ticker.C:
		}
	}
}

// ReadHash returns the winning hash in natural byte order.
func ReadHash(bus Bus) (sha256.Digest, error) {
	var words [HashOutWords]uint32
	for i := range words {
		word, err := bus.Read32(HashOutAddress(i))
		if err != nil {
			return sha256.Digest{}, err
		}
		words[i] = word
	}
	var hash sha256.Digest
	binaryserializer.PutWords(hash[:], words[:])
	return hash, nil
}

// ReadNonce returns the winning nonce.
func ReadNonce(bus Bus) (uint32, error) {
	return bus.Read32(NonceOutAddress())
}

// MineHeader searches nonceRange nonces starting at h.Nonce for one that
// meets the target in h.Bits. The range is cut short at the last nonce, which
// MAX_NONCE can't include.
func MineHeader(ctx context.Context, bus Bus, h *header.BlockHeader, nonceRange uint32,
	pollInterval time.Duration) (*Solution, error) {

	target, err := pow.CompactToTargetBytes(h.Bits)
	if err != nil {
		return nil, err
	}

	maxNonce := uint32(math.MaxUint32)
	if nonceRange < maxNonce-h.Nonce {
		maxNonce = h.Nonce + nonceRange
	}

	err = LoadHeader(bus, h)
	if err != nil {
		return nil, err
	}
	err = SetTarget(bus, target)
	if err != nil {
		return nil, err
	}
	err = StartMining(bus, maxNonce)
	if err != nil {
		return nil, err
	}

	found, err := WaitForResult(ctx, bus, pollInterval)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.Wrapf(miner.ErrNonceSpaceExhausted, "nonces [%d, %d)", h.Nonce, maxNonce)
	}

	nonce, err := ReadNonce(bus)
	if err != nil {
		return nil, err
	}
	hash, err := ReadHash(bus)
	if err != nil {
		return nil, err
	}
	return &Solution{Nonce: nonce, Hash: hash}, nil
}
