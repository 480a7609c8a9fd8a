package vole

// xorInto XORs src into dst in place. Both slices must have equal
// length; callers in this package always size them that way.
func xorInto(dst, src []byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
