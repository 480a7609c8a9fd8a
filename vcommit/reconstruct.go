package vcommit

import (
	"bytes"
	"fmt"

	"github.com/faest-go/vole/internal/bitutil"
	"github.com/faest-go/vole/internal/oracle"
	"github.com/faest-go/vole/seedtree"
)

// Reconstructed is vector_reconstruction's output view: every non-hidden
// leaf's (sd, com) pair, the hidden leaf index and its supplied
// commitment, and the reconstructed root h. The seed at the hidden leaf
// position is never populated (spec §3 invariant).
type Reconstructed struct {
	Depth       int
	LambdaBytes int
	Hidden      int
	Sd          [][]byte // len 2^Depth; Sd[Hidden] is nil
	Com         [][]byte // len 2^Depth; Com[Hidden] == comHidden
	H           []byte
}

// Reconstruct is vector_reconstruction (spec §4.5, §6): from the
// co-path seeds pdec and the hidden leaf's commitment comHidden, it
// rebuilds every non-hidden leaf by re-expanding each sibling subtree
// named by pdec, and folds all com_i (with comHidden filling the hidden
// slot) into h via H1 in the same increasing-index order the committer
// used, so an honest h matches bit-for-bit.
func Reconstruct(pdec [][]byte, comHidden []byte, b, iv []byte, lambdaBytes int) (*Reconstructed, error) {
	depth := len(b)
	if len(pdec) != depth {
		return nil, fmt.Errorf("vcommit: pdec length %d != challenge length %d", len(pdec), depth)
	}

	n := 1 << uint(depth)
	sd := make([][]byte, n)
	com := make([][]byte, n)
	hidden := int(bitutil.NumRec(b))
	if hidden < 0 || hidden >= n {
		return nil, fmt.Errorf("vcommit: hidden leaf %d out of range [0,%d)", hidden, n)
	}
	com[hidden] = comHidden

	a := 0
	for i := 0; i < depth; i++ {
		level := i + 1
		bit := b[depth-1-i]
		siblingIdx := 2*a + (1 - int(bit))
		subDepth := depth - level

		subtree, err := seedtree.Generate(pdec[i], subDepth)
		if err != nil {
			return nil, fmt.Errorf("vcommit: reconstruct level %d: %w", level, err)
		}

		base := siblingIdx << uint(subDepth)
		for j := 0; j < (1 << uint(subDepth)); j++ {
			leaf, err := subtree.Leaf(j)
			if err != nil {
				return nil, fmt.Errorf("vcommit: reconstruct leaf %d: %w", base+j, err)
			}
			sd[base+j], com[base+j] = oracle.H0(leaf, iv, lambdaBytes, 2*lambdaBytes)
		}

		a = 2*a + int(bit)
	}

	h1 := oracle.NewH1()
	for i := 0; i < n; i++ {
		h1.Absorb(com[i])
	}

	return &Reconstructed{
		Depth:       depth,
		LambdaBytes: lambdaBytes,
		Hidden:      hidden,
		Sd:          sd,
		Com:         com,
		H:           h1.Finalize(2 * lambdaBytes),
	}, nil
}

// Verify is vector_verify: it returns true iff the reconstructed h
// matches the committer's h for the same tree (spec §3 invariant
// "Reconstruction agreement").
func Verify(r *Reconstructed, h []byte) bool {
	return bytes.Equal(r.H, h)
}
