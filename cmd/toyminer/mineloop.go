package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kaspanet/shapow/domain/header"
	"github.com/pkg/errors"
)

// foundBlockChanSize bounds how far mining can run ahead of block handling.
const foundBlockChanSize = 16

// mineLoop mines numberOfBlocks chained headers, each one pointing at the
// hash of the previous one. Zero mines until ctx is done.
func mineLoop(ctx context.Context, s solver, template header.BlockHeader, numberOfBlocks uint64,
	nonceRange uint32, blocksFile string) error {

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errChan := make(chan error, 2)
	doneChan := make(chan struct{})
	foundBlockChan := make(chan *header.BlockHeader, foundBlockChanSize)

	spawn("blocksLoop", func() {
		defer close(foundBlockChan)
		next := template
		for i := uint64(0); numberOfBlocks == 0 || i < numberOfBlocks; i++ {
			block, err := mineNextBlock(ctx, s, next, nonceRange)
			if err != nil {
				errChan <- err
				return
			}
			select {
			case foundBlockChan <- block:
			case <-ctx.Done():
				return
			}
			next = nextTemplate(block, template.Nonce)
		}
	})

	spawn("handleFoundBlock", func() {
		for block := range foundBlockChan {
			err := handleFoundBlock(block, blocksFile)
			if err != nil {
				errChan <- err
				return
			}
		}
		close(doneChan)
	})

	select {
	case err := <-errChan:
		return err
	case <-doneChan:
		// blocksLoop reports its error before closing foundBlockChan.
		select {
		case err := <-errChan:
			return err
		default:
			return nil
		}
	}
}

func mineNextBlock(ctx context.Context, s solver, template header.BlockHeader, nonceRange uint32) (
	*header.BlockHeader, error) {

	log.Infof("Mining block on top of %s with bits 0x%08x", template.PrevHash.DisplayString(), template.Bits)
	nonce, hash, err := s.solve(ctx, &template, nonceRange)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't mine on top of %s", template.PrevHash.DisplayString())
	}
	template.Nonce = nonce
	if template.BlockHash() != hash {
		return nil, errors.Errorf("solver returned hash %s for nonce %d, but the header hashes to %s",
			hash, nonce, template.BlockHash())
	}
	return &template, nil
}

// nextTemplate returns the header to mine after block: same target, the
// following second, and block as its parent.
func nextTemplate(block *header.BlockHeader, startNonce uint32) header.BlockHeader {
	next := *block
	next.PrevHash = block.BlockHash()
	next.Timestamp++
	next.Nonce = startNonce
	return next
}

func handleFoundBlock(block *header.BlockHeader, blocksFile string) error {
	hash := block.BlockHash()
	log.Infof("Found block %s with nonce %d", hash.DisplayString(), block.Nonce)
	if !block.CheckProofOfWork() {
		return errors.Errorf("block %s doesn't meet its target", hash.DisplayString())
	}

	if blocksFile == "" {
		return nil
	}
	file, err := os.OpenFile(blocksFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.WithStack(err)
	}
	_, err = fmt.Fprintln(file, block.Hex())
	if err != nil {
		file.Close()
		return errors.WithStack(err)
	}
	return errors.WithStack(file.Close())
}
