// Package prg provides the pseudorandom generator the VOLE commitment
// core expands seeds with. The core treats the PRG as an external
// collaborator (see spec §6); this package supplies the concrete
// AES-CTR instantiation FAEST uses, built on crypto/aes and
// crypto/cipher.
package prg

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// Expand deterministically expands seed into outLen pseudorandom bytes,
// keyed by seed and counter-offset by iv. seed must be 16, 24 or 32
// bytes (selecting AES-128/192/256); iv must be 16 bytes.
//
// This is the only place key length selects the AES variant; every
// caller in this module is lambda-parametric and simply passes a
// lambda/8-byte seed.
func Expand(seed, iv []byte, outLen int) ([]byte, error) {
	out := make([]byte, outLen)
	if err := ExpandInto(seed, iv, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExpandInto is Expand without the allocation; it fills out completely
// and is the hot path used by the seed tree and the VOLE leaf loops.
func ExpandInto(seed, iv, out []byte) error {
	switch len(seed) {
	case 16, 24, 32:
	default:
		return fmt.Errorf("prg: seed length must be 16, 24 or 32 bytes, got %d", len(seed))
	}
	if len(iv) != 16 {
		return fmt.Errorf("prg: iv must be 16 bytes, got %d", len(iv))
	}

	block, err := aes.NewCipher(seed)
	if err != nil {
		return fmt.Errorf("prg: %w", err)
	}
	stream := cipher.NewCTR(block, iv)
	for i := range out {
		out[i] = 0
	}
	stream.XORKeyStream(out, out)
	return nil
}

// ZeroIV is the fixed all-zero counter used for internal seed-tree node
// expansion (spec §4.1, §9 "Zero-IV for internal PRG"). Outer prg calls
// that expand a leaf seed into VOLE rows use the caller-supplied iv
// instead; the two domains must never be mixed.
var ZeroIV = make([]byte, 16)
