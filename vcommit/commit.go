// Package vcommit implements the vector commitment primitives built on
// top of a seed tree (spec §3-4): materialized and streaming commitment,
// decommitment (vector_open), and reconstruction/verification from a
// partial decommitment (vector_reconstruction, vector_verify).
package vcommit

import (
	"fmt"

	"github.com/faest-go/vole/internal/oracle"
	"github.com/faest-go/vole/seedtree"
)

// Commitment is a fully materialized vector commitment: every leaf's
// (sd, com) pair plus the root commitment h = H1(com_0 || com_1 || ...).
type Commitment struct {
	H           []byte
	Sd          [][]byte
	Com         [][]byte
	Depth       int
	LambdaBytes int

	tree *seedtree.Tree
}

// Commit materializes the full seed tree rooted at rootKey and derives
// every leaf's (sd, com) via H0, then folds all com_i into h via H1 in
// strictly increasing leaf order (spec §3 "Ordering").
func Commit(rootKey, iv []byte, depth int) (*Commitment, error) {
	lambdaBytes := len(rootKey)
	tree, err := seedtree.Generate(rootKey, depth)
	if err != nil {
		return nil, fmt.Errorf("vcommit: %w", err)
	}

	n := 1 << uint(depth)
	sd := make([][]byte, n)
	com := make([][]byte, n)
	h1 := oracle.NewH1()

	for i := 0; i < n; i++ {
		leaf, err := tree.Leaf(i)
		if err != nil {
			return nil, fmt.Errorf("vcommit: %w", err)
		}
		sd[i], com[i] = oracle.H0(leaf, iv, lambdaBytes, 2*lambdaBytes)
		h1.Absorb(com[i])
	}

	return &Commitment{
		H:           h1.Finalize(2 * lambdaBytes),
		Sd:          sd,
		Com:         com,
		Depth:       depth,
		LambdaBytes: lambdaBytes,
		tree:        tree,
	}, nil
}

// Tree exposes the underlying materialized seed tree, for the
// decommitment encoder (Open) to pull co-path seeds from.
func (c *Commitment) Tree() *seedtree.Tree { return c.tree }
