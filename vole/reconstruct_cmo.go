package vole

import (
	"fmt"

	"github.com/faest-go/vole/internal/bitutil"
	"github.com/faest-go/vole/internal/prg"
	"github.com/faest-go/vole/vcommit"
)

// ReconstructCMO is the column-major VOLE reconstructor (spec §4.5). It
// rebuilds Q over the column window [begin, end) from a reconstructed
// vector commitment view r (vcommit.Reconstruct's output), whose leaf at
// index r.Hidden was never materialized.
//
// The reindexing i' = i XOR r.Hidden (spec §4.5 "Why i' = i XOR
// offset") makes the loop skip exactly i' = 0 while preserving the same
// XOR structure the constructor used, so Q agrees with the honest V on
// every tree-local column j except those with bit_j(r.Hidden) = 1 (spec
// Property 3); q stores column j at position j-begin.
func ReconstructCMO(iv []byte, r *vcommit.Reconstructed, outLenBytes, begin, end int) (q []byte, err error) {
	if begin < 0 || end > r.Depth || begin > end {
		return nil, fmt.Errorf("vole: invalid column window [%d,%d) for depth %d", begin, end, r.Depth)
	}

	q = make([]byte, (end-begin)*outLenBytes)
	rvec := make([]byte, outLenBytes)
	n := 1 << uint(r.Depth)

	for i := 0; i < n; i++ {
		if i == r.Hidden {
			continue
		}
		if err := prg.ExpandInto(r.Sd[i], iv, rvec); err != nil {
			return nil, fmt.Errorf("vole: reconstruct leaf %d: %w", i, err)
		}
		iPrime := uint64(i ^ r.Hidden)
		for j := begin; j < end; j++ {
			if bitutil.Bit(iPrime, j) == 1 {
				col := q[(j-begin)*outLenBytes : (j-begin+1)*outLenBytes]
				xorInto(col, rvec)
			}
		}
	}
	return q, nil
}
