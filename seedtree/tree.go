// Package seedtree implements the GGM seed tree (spec §4.1): a balanced
// binary tree of PRG-derived seeds, in both a fully materialized form
// and a streaming form that caches only one root-to-leaf path.
package seedtree

import (
	"fmt"

	"github.com/faest-go/vole/internal/prg"
)

// Tree is a fully materialized seed tree of the given depth: every
// internal node and every one of the 2^depth leaves is stored.
type Tree struct {
	Depth       int
	LambdaBytes int
	nodes       [][]byte // flat storage, indexed via NodeIndex(level, idxAtLevel)
}

// NodeIndex returns the linear storage index of the node at the given
// level (0 = root) and index within that level, using the standard
// 0-indexed heap layout: level l starts at offset 2^l - 1.
func NodeIndex(level, idxAtLevel int) int {
	return (1 << uint(level)) - 1 + idxAtLevel
}

// Generate deterministically expands rootKey into a complete tree of the
// given depth. Level 0 holds rootKey; each internal node expands via
// prg.Expand(node, prg.ZeroIV, 2*lambdaBytes) into its two children, the
// low lambdaBytes being the left child and the high lambdaBytes the
// right child, exactly as spec §4.1 describes.
func Generate(rootKey []byte, depth int) (*Tree, error) {
	if depth < 0 {
		return nil, fmt.Errorf("seedtree: depth must be >= 0, got %d", depth)
	}
	lambdaBytes := len(rootKey)
	total := (1 << uint(depth+1)) - 1
	nodes := make([][]byte, total)
	nodes[0] = rootKey

	for level := 0; level < depth; level++ {
		count := 1 << uint(level)
		for idx := 0; idx < count; idx++ {
			parent := nodes[NodeIndex(level, idx)]
			children, err := prg.Expand(parent, prg.ZeroIV, 2*lambdaBytes)
			if err != nil {
				return nil, fmt.Errorf("seedtree: expand level %d idx %d: %w", level, idx, err)
			}
			nodes[NodeIndex(level+1, 2*idx)] = children[:lambdaBytes]
			nodes[NodeIndex(level+1, 2*idx+1)] = children[lambdaBytes:]
		}
	}

	return &Tree{Depth: depth, LambdaBytes: lambdaBytes, nodes: nodes}, nil
}

// Leaf returns the seed at leaf position i (0 <= i < 2^Depth).
func (t *Tree) Leaf(i int) ([]byte, error) {
	if i < 0 || i >= (1<<uint(t.Depth)) {
		return nil, fmt.Errorf("seedtree: leaf index %d out of range [0,%d)", i, 1<<uint(t.Depth))
	}
	return t.nodes[NodeIndex(t.Depth, i)], nil
}

// Node returns the node at an arbitrary (level, idxAtLevel) position,
// used by the decommitment encoder to pull sibling seeds off the path
// to a hidden leaf.
func (t *Tree) Node(level, idxAtLevel int) ([]byte, error) {
	idx := NodeIndex(level, idxAtLevel)
	if idx < 0 || idx >= len(t.nodes) || t.nodes[idx] == nil {
		return nil, fmt.Errorf("seedtree: no node at level %d index %d", level, idxAtLevel)
	}
	return t.nodes[idx], nil
}
