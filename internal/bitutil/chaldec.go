package bitutil

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/faest-go/vole/params"
)

// ChalDec extracts the bit window belonging to tree i out of a lambda-bit
// challenge and returns it as a newly allocated slice chalOut of
// little-endian 0/1 bytes, whose length equals the tree's depth
// (params.ParamSet.DepthAt(i)).
//
// The window for tree i < Tau0 starts at bit i*K0 and has length K0; for
// Tau0 <= i < Tau0+Tau1 it starts at Tau0*K0 + (i-Tau0)*K1 and has length
// K1. ok is false iff i is out of range [0, Tau0+Tau1); chalOut is nil in
// that case.
func ChalDec(chal []byte, i int, p params.ParamSet) (chalOut []byte, ok bool) {
	if i < 0 || i >= p.Tau() {
		return nil, false
	}
	depth, err := p.DepthAt(i)
	if err != nil {
		return nil, false
	}

	var start int
	if i < p.Tau0 {
		start = i * p.K0
	} else {
		start = p.Tau0*p.K0 + (i-p.Tau0)*p.K1
	}

	bs := bitset.New(uint(len(chal) * 8))
	for byteIdx, b := range chal {
		for bitIdx := 0; bitIdx < 8; bitIdx++ {
			if b&(1<<uint(bitIdx)) != 0 {
				bs.Set(uint(byteIdx*8 + bitIdx))
			}
		}
	}

	out := make([]byte, depth)
	for j := 0; j < depth; j++ {
		if bs.Test(uint(start + j)) {
			out[j] = 1
		}
	}
	return out, true
}
