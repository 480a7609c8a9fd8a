package vole

import (
	"fmt"

	"github.com/faest-go/vole/internal/prg"
	"github.com/faest-go/vole/vcommit"
)

// ReconstructRMO is the row-major VOLE reconstructor (spec §4.5), the
// RMO twin of ReconstructCMO: same hidden-leaf skip and i' = i XOR
// r.Hidden reindexing, but depositing the reindexed integer into q's
// row-major bit window the way ConstructRMO does for V.
func ReconstructRMO(iv []byte, r *vcommit.Reconstructed, outLenBytes, start, length, rowBytes, colOffset int) (q []byte, err error) {
	if colOffset < 0 || colOffset+r.Depth > rowBytes*8 {
		return nil, fmt.Errorf("vole: column window [%d,%d) exceeds row width %d bits", colOffset, colOffset+r.Depth, rowBytes*8)
	}

	q = make([]byte, length*rowBytes)
	rvec := make([]byte, outLenBytes)
	n := 1 << uint(r.Depth)

	for i := 0; i < n; i++ {
		if i == r.Hidden {
			continue
		}
		if err := prg.ExpandInto(r.Sd[i], iv, rvec); err != nil {
			return nil, fmt.Errorf("vole: reconstruct leaf %d: %w", i, err)
		}
		iPrime := i ^ r.Hidden
		for rowIdx := 0; rowIdx < length; rowIdx++ {
			globalRow := start + rowIdx
			if !bitSet(rvec, globalRow) {
				continue
			}
			writeRMOBits(q, rowIdx, rowBytes, colOffset, r.Depth, iPrime)
		}
	}
	return q, nil
}
