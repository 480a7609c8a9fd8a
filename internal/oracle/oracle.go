// Package oracle implements the H0/H1 random oracles the VOLE commitment
// core uses to turn leaf seeds into commitments and to absorb those
// commitments into a root hash. Both are modeled as domain-separated
// SHAKE-256 extendable-output functions: each instance starts with a
// length-prefixed domain tag, and H1 absorbs its input incrementally
// before a single finalize.
package oracle

import (
	"golang.org/x/crypto/sha3"
)

// Domain separation tags. H0 and H1 must never collide with each other
// or across security levels sharing one transcript.
const (
	domainH0 = "FAEST-VOLE.H0"
	domainH1 = "FAEST-VOLE.H1"
)

// H0 derives a leaf's (sd, com) pair from the leaf node and the run's
// IV. sdLen and comLen are the caller's lambda-parametric output sizes
// (lambda/8 and 2*lambda/8 respectively, per spec §6).
func H0(leaf, iv []byte, sdLen, comLen int) (sd, com []byte) {
	x := sha3.NewShake256()
	writeDomain(x, domainH0)
	x.Write(leaf)
	x.Write(iv)

	out := make([]byte, sdLen+comLen)
	x.Read(out)
	return out[:sdLen], out[sdLen:]
}

// H1 is an incremental absorber that finalizes to a 2*lambda/8-byte
// digest. The zero value is not usable; construct with NewH1.
type H1 struct {
	x sha3.ShakeHash
}

// NewH1 starts a fresh H1 absorption context.
func NewH1() *H1 {
	x := sha3.NewShake256()
	writeDomain(x, domainH1)
	return &H1{x: x}
}

// Absorb feeds data into the running H1 state. Order matters: the core
// must absorb per-leaf commitments in strictly increasing leaf index
// (spec §3 "Ordering") for the finalized digest to match across commit
// and reconstruct.
func (h *H1) Absorb(data []byte) {
	h.x.Write(data)
}

// Finalize squeezes outLen bytes out of the absorber. Finalize may be
// called at most once; the underlying XOF is not reset.
func (h *H1) Finalize(outLen int) []byte {
	out := make([]byte, outLen)
	h.x.Read(out)
	return out
}

// writeDomain prepends a length-prefixed domain tag ahead of the
// payload, preventing collisions between differently-purposed XOF
// instances.
func writeDomain(x sha3.ShakeHash, domain string) {
	x.Write([]byte{byte(len(domain))})
	x.Write([]byte(domain))
}
