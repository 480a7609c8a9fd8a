package vole

import (
	"fmt"

	"github.com/faest-go/vole/internal/oracle"
)

// ConstructRMO is the row-major VOLE constructor (spec §4.4). v holds
// `length` rows of rowBytes bytes each, covering the global row range
// [start, start+length) of the ellhat-bit row space; colOffset is this
// tree's running column offset within a row (sum of depths of trees
// before it). For standard FAEST parameter sets rowBytes == lambdaBytes
// (total columns across all trees equal lambda bits).
//
// For each leaf i, a row is touched iff bit (start+rowIdx) of
// PRG(sd_i) is set; when touched, the depth-bit integer i is XORed into
// that row's bit window [colOffset, colOffset+depth) using non-carrying
// per-byte writes (spec §9 "Integer shift discipline").
//
// v must already be zeroed by the caller across the full row span it
// will read (spec §9 open question (ii)); ConstructRMO accumulates with
// XOR and only touches the rows whose selector bit is 1, so it cannot
// zero v itself without clobbering other trees' contributions to the
// same buffer.
func ConstructRMO(iv []byte, src LeafSource, depth, lambdaBytes, outLenBytes int, start, length, rowBytes, colOffset int, u, v []byte, wantH bool) (h []byte, err error) {
	if v != nil && len(v) != length*rowBytes {
		return nil, fmt.Errorf("vole: v must be %d bytes, got %d", length*rowBytes, len(v))
	}
	if colOffset < 0 || colOffset+depth > rowBytes*8 {
		return nil, fmt.Errorf("vole: column window [%d,%d) exceeds row width %d bits", colOffset, colOffset+depth, rowBytes*8)
	}

	var h1 *oracle.H1
	if wantH {
		h1 = oracle.NewH1()
	}

	err = runLeafLoop(iv, src, depth, outLenBytes, u, h1, func(i int, r []byte) error {
		if v == nil {
			return nil
		}
		for rowIdx := 0; rowIdx < length; rowIdx++ {
			globalRow := start + rowIdx
			if !bitSet(r, globalRow) {
				continue
			}
			writeRMOBits(v, rowIdx, rowBytes, colOffset, depth, i)
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

// bitSet reports whether bit index `bit` of byte slice r is set.
func bitSet(r []byte, bit int) bool {
	return (r[bit/8]>>uint(bit%8))&1 == 1
}

// writeRMOBits XORs the depth-bit integer value into row rowIdx of v at
// bit offset colOffset, splitting the shift across byte boundaries to
// avoid carries (spec §4.4, §9).
func writeRMOBits(v []byte, rowIdx, rowBytes, colOffset, depth, value int) {
	bitOffset := colOffset % 8
	byteOffset := colOffset / 8
	base := rowIdx*rowBytes + byteOffset

	v[base] ^= byte(value<<uint(bitOffset)) & 0xFF

	limit := (bitOffset+depth+7)/8 - 1
	for j := 1; j <= limit; j++ {
		shift := j*8 - bitOffset
		v[base+j] ^= byte(value>>uint(shift)) & 0xFF
	}
}
