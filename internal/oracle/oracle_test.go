package oracle

import (
	"bytes"
	"testing"
)

func TestH0Deterministic(t *testing.T) {
	leaf := bytes.Repeat([]byte{0x05}, 16)
	iv := make([]byte, 16)

	sd1, com1 := H0(leaf, iv, 16, 32)
	sd2, com2 := H0(leaf, iv, 16, 32)
	if !bytes.Equal(sd1, sd2) || !bytes.Equal(com1, com2) {
		t.Error("H0 is not deterministic for identical inputs")
	}
	if len(sd1) != 16 || len(com1) != 32 {
		t.Fatalf("H0 lengths = %d/%d, want 16/32", len(sd1), len(com1))
	}
	if bytes.Equal(sd1, com1[:16]) {
		t.Error("sd and the first half of com should not coincide")
	}
}

func TestH0DomainSeparationFromH1(t *testing.T) {
	leaf := bytes.Repeat([]byte{0x07}, 16)
	iv := make([]byte, 16)
	_, com := H0(leaf, iv, 16, 32)

	h1 := NewH1()
	h1.Absorb(leaf)
	h1.Absorb(iv)
	out := h1.Finalize(32)

	if bytes.Equal(com, out) {
		t.Error("H0 and H1 produced the same output for the same bytes; domain separation is broken")
	}
}

func TestH1OrderSensitive(t *testing.T) {
	a := NewH1()
	a.Absorb([]byte("left"))
	a.Absorb([]byte("right"))

	b := NewH1()
	b.Absorb([]byte("right"))
	b.Absorb([]byte("left"))

	if bytes.Equal(a.Finalize(32), b.Finalize(32)) {
		t.Error("H1 output did not depend on absorption order")
	}
}

func TestH1Deterministic(t *testing.T) {
	mk := func() []byte {
		h := NewH1()
		h.Absorb([]byte("com0"))
		h.Absorb([]byte("com1"))
		h.Absorb([]byte("com2"))
		return h.Finalize(32)
	}
	if !bytes.Equal(mk(), mk()) {
		t.Error("H1 is not deterministic for identical absorption sequences")
	}
}
