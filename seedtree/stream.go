package seedtree

import (
	"fmt"

	"github.com/faest-go/vole/internal/prg"
)

// Stream is the streaming seed tree (spec §4.1): it stores only the root
// seed plus a single cached root-to-leaf path, and descends from the
// deepest cached ancestor of the next requested leaf instead of
// recomputing the whole path from the root every time.
//
// A Stream is caller-owned and must not be shared across goroutines;
// Leaf mutates the cached path in place.
type Stream struct {
	RootKey     []byte
	Depth       int
	LambdaBytes int

	// index is the last-produced leaf; the sentinel value Depth means
	// "no path cached yet".
	index int

	// path[i] holds the node visited at level i+1 (exclusive of the
	// root) for the most recently produced leaf.
	path [][]byte
}

// NewStream starts a streaming seed tree rooted at rootKey, with no
// cached path (equivalent to sVecCom.index = depth in the spec).
func NewStream(rootKey []byte, depth int) *Stream {
	return &Stream{
		RootKey:     rootKey,
		Depth:       depth,
		LambdaBytes: len(rootKey),
		index:       depth,
		path:        make([][]byte, depth),
	}
}

// Reset clears the cached path, forcing the next Leaf call to walk from
// the root. This is the Go equivalent of setting sVecCom.path = nil.
func (s *Stream) Reset() {
	s.index = s.Depth
	s.path = make([][]byte, s.Depth)
}

// Leaf produces the seed at leaf position index, reusing as much of the
// cached path as possible. Consumers that visit indices in monotonically
// increasing order amortize to ~2 PRG calls per leaf; arbitrary order
// still produces the correct leaf, just with more PRG calls on a cold
// cache (spec Property 2).
func (s *Stream) Leaf(index int) ([]byte, error) {
	if index < 0 || index >= (1<<uint(s.Depth)) {
		return nil, fmt.Errorf("seedtree: leaf index %d out of range [0,%d)", index, 1<<uint(s.Depth))
	}

	lo, hi := 0, (1<<uint(s.Depth))-1
	node := s.RootKey
	startLevel := 0

	if s.index != s.Depth {
		for i := 0; i < s.Depth; i++ {
			center := (hi-lo)/2 + lo
			cachedOnLeft := s.index <= center
			targetOnLeft := index <= center
			if cachedOnLeft != targetOnLeft {
				// The cached subtree at this level doesn't contain the
				// new target; node/lo/hi already sit at the shallowest
				// usable ancestor.
				break
			}
			node = s.path[i]
			if cachedOnLeft {
				hi = center
			} else {
				lo = center + 1
			}
			startLevel = i + 1
		}
	}

	for i := startLevel; i < s.Depth; i++ {
		center := (hi-lo)/2 + lo
		children, err := prg.Expand(node, prg.ZeroIV, 2*s.LambdaBytes)
		if err != nil {
			return nil, fmt.Errorf("seedtree: expand at level %d: %w", i, err)
		}
		if index <= center {
			node = children[:s.LambdaBytes]
			hi = center
		} else {
			node = children[s.LambdaBytes:]
			lo = center + 1
		}
		s.path[i] = node
	}

	s.index = index
	return node, nil
}
