package vole

import (
	"fmt"

	"github.com/faest-go/vole/internal/bitutil"
	"github.com/faest-go/vole/internal/oracle"
)

// ConstructCMO is the column-major VOLE constructor (spec §4.3). It
// iterates every leaf of a depth-deep tree and, for the half-open
// column window [begin, end), deposits column j = XOR_{i: bit_j(i)=1}
// PRG(sd_i) into v, contiguous outLenBytes per column.
//
// u and v are optional ("⊥" in the spec): pass nil to skip folding into
// u, or a nil v to skip the column write (e.g. when only hcom is
// wanted). When non-nil, u must be outLenBytes long and v must be
// (end-begin)*outLenBytes long; both are zeroed before use. wantH
// requests the per-tree root commitment h = H1(com_0 || com_1 || ...).
func ConstructCMO(iv []byte, src LeafSource, depth, lambdaBytes, outLenBytes, begin, end int, u, v []byte, wantH bool) (h []byte, err error) {
	if begin < 0 || end > depth || begin > end {
		return nil, fmt.Errorf("vole: invalid column window [%d,%d) for depth %d", begin, end, depth)
	}
	if u != nil && len(u) != outLenBytes {
		return nil, fmt.Errorf("vole: u must be %d bytes, got %d", outLenBytes, len(u))
	}
	if v != nil && len(v) != (end-begin)*outLenBytes {
		return nil, fmt.Errorf("vole: v must be %d bytes, got %d", (end-begin)*outLenBytes, len(v))
	}

	if u != nil {
		zero(u)
	}
	if v != nil {
		zero(v)
	}

	var h1 *oracle.H1
	if wantH {
		h1 = oracle.NewH1()
	}

	err = runLeafLoop(iv, src, depth, outLenBytes, u, h1, func(i int, r []byte) error {
		if v == nil {
			return nil
		}
		for j := begin; j < end; j++ {
			if bitutil.Bit(uint64(i), j) == 1 {
				col := v[(j-begin)*outLenBytes : (j-begin+1)*outLenBytes]
				xorInto(col, r)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if wantH {
		return h1.Finalize(2 * lambdaBytes), nil
	}
	return nil, nil
}
