// Package miner searches the nonce space of a block header for a hash that
// satisfies a Criterion, spreading the candidates over a pool of workers.
package miner

import (
	"context"
	"encoding/binary"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kaspanet/shapow/domain/header"
	"github.com/kaspanet/shapow/domain/sha256"
	"github.com/kaspanet/shapow/infrastructure/logger"
	"github.com/pkg/errors"
)

// nonceSpace is the number of distinct 32-bit nonces.
const nonceSpace = uint64(math.MaxUint32) + 1

// contextCheckInterval is how many nonces a worker tries between checks for
// cancellation.
const contextCheckInterval = 1024

const defaultLogHashRateInterval = 10 * time.Second

var (
	// ErrNonceSpaceExhausted is returned when no nonce in the searched range
	// satisfies the criterion.
	ErrNonceSpaceExhausted = errors.New("nonce range exhausted without a solution")

	// ErrInvalidConfig is returned for a SearchConfig that cannot be run.
	ErrInvalidConfig = errors.New("invalid search config")
)

// SearchConfig describes a nonce search.
type SearchConfig struct {
	// Template is the header to mine. Its Nonce field is ignored.
	Template header.BlockHeader

	// StartNonce is the first nonce tried.
	StartNonce uint32

	// NonceRange is the number of nonces to try, starting at StartNonce.
	// Zero, or a range running past the last nonce, searches to the end of
	// the nonce space.
	NonceRange uint64

	// Workers is the number of goroutines hashing candidates. Zero means one.
	Workers int

	// Criterion decides which hashes solve the search.
	Criterion Criterion

	// LogHashRateInterval is the period of hash rate log messages.
	// Zero means every 10 seconds.
	LogHashRateInterval time.Duration
}

// Result is a solved search.
type Result struct {
	// Header is the template with the winning nonce filled in.
	Header header.BlockHeader

	Nonce uint32
	Hash  sha256.Digest

	// HashesTried counts header hashes computed by all workers, including
	// the ones that ran past the winning nonce before stopping.
	HashesTried uint64
}

type workerFind struct {
	found bool
	nonce uint32
	hash  sha256.Digest
}

// Search tries nonces in ascending order and returns the lowest one whose
// header hash satisfies cfg.Criterion. The returned nonce does not depend on
// the number of workers.
func Search(ctx context.Context, cfg *SearchConfig) (*Result, error) {
	onEnd := logger.LogAndMeasureExecutionTime(log, "miner.Search")
	defer onEnd()

	if cfg.Criterion == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "a criterion is required")
	}
	if cfg.Workers < 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "negative number of workers %d", cfg.Workers)
	}
	workers := cfg.Workers
	if workers == 0 {
		workers = 1
	}

	start := uint64(cfg.StartNonce)
	end := nonceSpace
	if cfg.NonceRange != 0 && cfg.NonceRange < nonceSpace-start {
		end = start + cfg.NonceRange
	}

	// best holds the lowest solving nonce seen so far, or end if none.
	best := end
	var hashesTried uint64
	finds := make([]workerFind, workers)

	stopRateLog := logHashRate(cfg.LogHashRateInterval, &hashesTried)
	defer stopRateLog()

	template := cfg.Template.Serialize()
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		workerIndex := i
		spawn("miner.searchWorker", func() {
			defer wg.Done()
			finds[workerIndex] = searchWorker(ctx, template, start+uint64(workerIndex), end,
				uint64(workers), cfg.Criterion, &best, &hashesTried)
		})
	}
	wg.Wait()

	tried := atomic.LoadUint64(&hashesTried)
	// A cancelled worker may have skipped nonces below any solution found.
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrapf(err, "search stopped after %d hashes", tried)
	}

	winner := -1
	for i, find := range finds {
		if find.found && uint64(find.nonce) == atomic.LoadUint64(&best) {
			winner = i
		}
	}
	if winner == -1 {
		log.Debugf("No solution in nonces [%d, %d) after %d hashes", start, end, tried)
		return nil, errors.Wrapf(ErrNonceSpaceExhausted, "nonces [%d, %d)", start, end)
	}

	find := finds[winner]
	solved := cfg.Template
	solved.Nonce = find.nonce
	log.Debugf("Found nonce %d with hash %s after %d hashes", find.nonce, find.hash, tried)
	return &Result{
		Header:      solved,
		Nonce:       find.nonce,
		Hash:        find.hash,
		HashesTried: tried,
	}, nil
}

// searchWorker tries nonce, nonce+stride, ... below end until it finds a
// solution, passes the best solution known to all workers, or ctx is done.
func searchWorker(ctx context.Context, template [header.Size]byte, nonce, end, stride uint64,
	criterion Criterion, best *uint64, hashesTried *uint64) workerFind {

	raw := template
	var tried uint64
	defer func() { atomic.AddUint64(hashesTried, tried) }()

	for ; nonce < end; nonce += stride {
		if nonce >= atomic.LoadUint64(best) {
			return workerFind{}
		}
		if tried == contextCheckInterval {
			if ctx.Err() != nil {
				return workerFind{}
			}
			atomic.AddUint64(hashesTried, tried)
			tried = 0
		}

		binary.LittleEndian.PutUint32(raw[header.NonceOffset:], uint32(nonce))
		hash := sha256.DoubleSum(raw[:])
		tried++
		if !criterion(hash) {
			continue
		}

		for {
			current := atomic.LoadUint64(best)
			if nonce >= current || atomic.CompareAndSwapUint64(best, current, nonce) {
				break
			}
		}
		return workerFind{found: true, nonce: uint32(nonce), hash: hash}
	}
	return workerFind{}
}

// logHashRate periodically logs the hash rate until the returned function is
// called.
func logHashRate(interval time.Duration, hashesTried *uint64) (stop func()) {
	if interval == 0 {
		interval = defaultLogHashRateInterval
	}
	done := make(chan struct{})
	spawn("miner.logHashRate", func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		lastCheck := time.Now()
		lastCount := uint64(0)
		for {
			select {
			case <-done:
				return
			case now := <-ticker.C:
				count := atomic.LoadUint64(hashesTried)
				kiloHashesTried := float64(count-lastCount) / 1000.0
				log.Infof("Tried %d nonces, current hash rate is %.2f Khash/s",
					count, kiloHashesTried/now.Sub(lastCheck).Seconds())
				lastCheck = now
				lastCount = count
			}
		}
	})
	return func() { close(done) }
}
