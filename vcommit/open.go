package vcommit

import (
	"fmt"

	"github.com/faest-go/vole/internal/bitutil"
	"github.com/faest-go/vole/internal/oracle"
	"github.com/faest-go/vole/internal/prg"
	"github.com/faest-go/vole/seedtree"
)

// Open is vector_open (spec §6): given the materialized tree and a
// little-endian challenge bit vector b identifying the hidden leaf
// j* = NumRec(b), it returns the co-path seeds pdec (ordered
// root-adjacent to leaf-adjacent, per spec §6 "Persisted format") and
// the hidden leaf's commitment com_j, which the verifier needs because
// it can never recompute com_j itself.
func Open(tree *seedtree.Tree, b []byte, com [][]byte) (pdec [][]byte, comHidden []byte, err error) {
	depth := len(b)
	if depth != tree.Depth {
		return nil, nil, fmt.Errorf("vcommit: challenge length %d != tree depth %d", depth, tree.Depth)
	}

	pdec = make([][]byte, depth)
	a := 0
	for i := 0; i < depth; i++ {
		level := i + 1
		bit := b[depth-1-i]
		siblingIdx := 2*a + (1 - int(bit))
		node, err := tree.Node(level, siblingIdx)
		if err != nil {
			return nil, nil, fmt.Errorf("vcommit: open level %d: %w", level, err)
		}
		pdec[i] = node
		a = 2*a + int(bit)
	}

	hidden := int(bitutil.NumRec(b))
	if hidden < 0 || hidden >= len(com) {
		return nil, nil, fmt.Errorf("vcommit: hidden leaf %d out of range", hidden)
	}
	return pdec, com[hidden], nil
}

// OpenStream is Open's streaming twin: it derives pdec and the hidden
// leaf's commitment with a single root-to-leaf walk of depth len(b) PRG
// calls, never materializing the other 2^depth-1 leaves. Callers that
// already hold a materialized seedtree.Tree (e.g. because they also
// need com for every leaf to fold into H1) should use Open instead;
// OpenStream exists for the decommit-only path where the committer
// re-derives a single tree's seeds on demand.
func OpenStream(rootKey, iv, b []byte) (pdec [][]byte, comHidden []byte, err error) {
	depth := len(b)
	lambdaBytes := len(rootKey)

	pdec = make([][]byte, depth)
	node := rootKey
	for i := 0; i < depth; i++ {
		bit := b[depth-1-i]
		children, err := prg.Expand(node, prg.ZeroIV, 2*lambdaBytes)
		if err != nil {
			return nil, nil, fmt.Errorf("vcommit: open stream level %d: %w", i+1, err)
		}
		left, right := children[:lambdaBytes], children[lambdaBytes:]
		var next, sibling []byte
		if bit == 1 {
			next, sibling = right, left
		} else {
			next, sibling = left, right
		}
		pdec[i] = sibling
		node = next
	}

	_, com := oracle.H0(node, iv, lambdaBytes, 2*lambdaBytes)
	return pdec, com, nil
}
