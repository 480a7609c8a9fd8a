package vcommit

import (
	"github.com/faest-go/vole/internal/oracle"
	"github.com/faest-go/vole/seedtree"
)

// StreamCommitment is the streaming counterpart of Commitment: it never
// materializes the full tree, instead deriving each (sd, com) pair on
// demand from the streaming seed tree's cached path (spec §4.1).
type StreamCommitment struct {
	stream      *seedtree.Stream
	iv          []byte
	lambdaBytes int
}

// NewStreamCommitment starts a streaming vector commitment rooted at
// rootKey. iv is the run's PRG IV, threaded into every H0 call.
func NewStreamCommitment(rootKey, iv []byte, depth int) *StreamCommitment {
	return &StreamCommitment{
		stream:      seedtree.NewStream(rootKey, depth),
		iv:          iv,
		lambdaBytes: len(rootKey),
	}
}

// GetSdCom is get_sd_com from spec §4.1: it descends the streaming tree
// to leaf index (reusing the cached path when possible) and derives
// (sd, com) via H0. Consumers are expected to call this for i =
// 0..2^depth-1 in increasing order, but any order yields the correct
// leaf (spec Property 2), just at higher PRG cost on a cold cache.
func (s *StreamCommitment) GetSdCom(index int) (sd, com []byte, err error) {
	leaf, err := s.stream.Leaf(index)
	if err != nil {
		return nil, nil, err
	}
	sd, com = oracle.H0(leaf, s.iv, s.lambdaBytes, 2*s.lambdaBytes)
	return sd, com, nil
}

// Reset drops the cached path, forcing the next GetSdCom call to walk
// from the root. Equivalent to the spec's sVecCom.path = nil.
func (s *StreamCommitment) Reset() { s.stream.Reset() }
