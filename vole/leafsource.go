// Package vole implements the VOLE constructor and reconstructor (spec
// §4.3-4.6): the engine that turns per-leaf seeds into the universal
// vector u, the matrix V in column-major or row-major layout, and the
// outer commitment hcom, plus the matching reconstruction path a
// verifier runs over a partial decommitment.
package vole

import "github.com/faest-go/vole/vcommit"

// LeafSource is the minimal interface the constructor's leaf loop needs:
// the (sd_i, com_i) pair for leaf i, regardless of whether it comes from
// a materialized or a streaming vector commitment.
type LeafSource interface {
	GetSdCom(i int) (sd, com []byte, err error)
}

// commitmentSource adapts a materialized *vcommit.Commitment, whose
// leaves are already all computed, to LeafSource.
type commitmentSource struct {
	c *vcommit.Commitment
}

// Materialized wraps a *vcommit.Commitment as a LeafSource.
func Materialized(c *vcommit.Commitment) LeafSource {
	return commitmentSource{c: c}
}

func (s commitmentSource) GetSdCom(i int) (sd, com []byte, err error) {
	return s.c.Sd[i], s.c.Com[i], nil
}

// streamSource adapts a *vcommit.StreamCommitment to LeafSource.
type streamSource struct {
	s *vcommit.StreamCommitment
}

// Streaming wraps a *vcommit.StreamCommitment as a LeafSource.
func Streaming(s *vcommit.StreamCommitment) LeafSource {
	return streamSource{s: s}
}

func (s streamSource) GetSdCom(i int) (sd, com []byte, err error) {
	return s.s.GetSdCom(i)
}
