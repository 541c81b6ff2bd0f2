// Package hwminer models the memory-mapped SHA-256 miner peripheral and
// provides the firmware routines that drive it over a Bus.
package hwminer

import (
	"context"
	"math/big"
	"sync"

	"github.com/kaspanet/shapow/domain/header"
	"github.com/kaspanet/shapow/domain/miner"
	"github.com/kaspanet/shapow/domain/pow"
	"github.com/kaspanet/shapow/util/binaryserializer"
	"github.com/pkg/errors"
)

// Device is a software model of the miner peripheral. It implements Bus.
//
// Writing CtrlStart while idle searches the nonces from HEADER word 19 up to,
// but not including, MAX_NONCE. CtrlBusy is set for the duration of the
// search, which then ends with either CtrlFound or CtrlExhausted.
type Device struct {
	sync.Mutex

	ctrl     uint32
	maxNonce uint32
	nonceOut uint32
	hashOut  [HashOutWords]uint32
	target   [TargetWords]uint32
	header   [HeaderWords]uint32

	workers int
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewDevice returns an idle device that hashes with the given number of
// workers.
func NewDevice(workers int) *Device {
	return &Device{workers: workers}
}

// Read32 returns the value of the register at address.
func (d *Device) Read32(address uint32) (uint32, error) {
	reg, err := decodeAddress(address)
	if err != nil {
		return 0, err
	}

	d.Lock()
	defer d.Unlock()

	switch reg.offset {
	case CtrlOffset:
		return d.ctrl, nil
	case MaxNonceOffset:
		return d.maxNonce, nil
	case NonceOutOffset:
		return d.nonceOut, nil
	case HashOutOffset:
		return d.hashOut[reg.index], nil
	case TargetOffset:
		return d.target[reg.index], nil
	case HeaderOffset:
		return d.header[reg.index], nil
	}
	return 0, errors.Wrapf(ErrUnmappedRegister, "address 0x%08x", address)
}

// Write32 sets the register at address. Input registers can't be written
// while a search is running.
func (d *Device) Write32(address uint32, value uint32) error {
	reg, err := decodeAddress(address)
	if err != nil {
		return err
	}

	d.Lock()
	defer d.Unlock()

	busy := d.ctrl&CtrlBusy != 0
	switch reg.offset {
	case NonceOutOffset, HashOutOffset:
		return errors.Wrapf(ErrReadOnlyRegister, "write to %s", reg)
	case CtrlOffset:
		if value&CtrlStart == 0 {
			return nil
		}
		if busy {
			return errors.Wrap(ErrBusy, "start requested during a search")
		}
		d.start()
		return nil
	}

	if busy {
		return errors.Wrapf(ErrBusy, "write to %s during a search", reg)
	}
	switch reg.offset {
	case MaxNonceOffset:
		d.maxNonce = value
	case TargetOffset:
		d.target[reg.index] = value
	case HeaderOffset:
		d.header[reg.index] = value
	}
	return nil
}

// start launches a search over the current register contents. d must be
// locked.
func (d *Device) start() {
	var headerBytes [header.Size]byte
	binaryserializer.PutWords(headerBytes[:], d.header[:])
	template, err := header.FromBytes(headerBytes[:])
	if err != nil {
		// FromBytes only fails on length, and the length is fixed.
		panic(err)
	}

	var targetBytes [pow.TargetSize]byte
	binaryserializer.PutWords(targetBytes[:], d.target[:])
	target := pow.TargetFromBytes(targetBytes)

	startNonce := d.header[headerNonceWord]
	maxNonce := d.maxNonce

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	d.cancel = cancel
	d.done = done
	d.ctrl = CtrlBusy

	log.Debugf("Starting search over nonces [%d, %d) for target %064x", startNonce, maxNonce, target)
	spawn("Device.search", func() {
		defer close(done)
		d.search(ctx, template, target, startNonce, maxNonce)
	})
}

func (d *Device) search(ctx context.Context, template *header.BlockHeader, target *big.Int,
	startNonce, maxNonce uint32) {

	if maxNonce <= startNonce {
		d.finish(CtrlExhausted, nil)
		return
	}

	result, err := miner.Search(ctx, &miner.SearchConfig{
		Template:   *template,
		StartNonce: startNonce,
		NonceRange: uint64(maxNonce - startNonce),
		Workers:    d.workers,
		Criterion:  miner.BelowTarget(target),
	})
	switch {
	case err == nil:
		d.finish(CtrlFound, result)
	case errors.Is(err, miner.ErrNonceSpaceExhausted):
		d.finish(CtrlExhausted, nil)
	case ctx.Err() != nil:
		d.finish(0, nil)
	default:
		log.Errorf("Search failed: %+v", err)
		d.finish(CtrlExhausted, nil)
	}
}

// finish publishes the outcome of a search and clears CtrlBusy.
func (d *Device) finish(status uint32, result *miner.Result) {
	d.Lock()
	defer d.Unlock()

	if result != nil {
		hashWords, err := binaryserializer.Words(result.Hash[:])
		if err != nil {
			panic(err)
		}
		copy(d.hashOut[:], hashWords)
		d.nonceOut = result.Nonce
		d.header[headerNonceWord] = result.Nonce
		log.Debugf("Found nonce %d with hash %s", result.Nonce, result.Hash)
	} else if status == CtrlExhausted {
		log.Debugf("Nonce range exhausted")
	}
	d.ctrl = status
}

// Wait blocks until the running search, if any, is over or ctx is done.
func (d *Device) Wait(ctx context.Context) error {
	d.Lock()
	done := d.done
	d.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	}
}

// Close aborts a running search and waits for it to stop. An aborted search
// leaves the device idle with neither CtrlFound nor CtrlExhausted set.
func (d *Device) Close() {
	d.Lock()
	cancel, done := d.cancel, d.done
	d.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}
