package bitutil

import (
	"testing"

	"github.com/faest-go/vole/params"
)

func TestChalDecWindowsPartitionChallenge(t *testing.T) {
	p := params.FAEST128S
	chal := make([]byte, p.LambdaBytes())
	for i := range chal {
		chal[i] = byte(i*37 + 1)
	}

	covered := make([]bool, p.Lambda)
	for t0 := 0; t0 < p.Tau(); t0++ {
		depth, err := p.DepthAt(t0)
		if err != nil {
			t.Fatalf("DepthAt(%d): %v", t0, err)
		}
		out, ok := ChalDec(chal, t0, p)
		if !ok {
			t.Fatalf("ChalDec(%d) returned !ok", t0)
		}
		if len(out) != depth {
			t.Fatalf("tree %d: got %d bits, want %d", t0, len(out), depth)
		}

		start := t0 * p.K0
		if t0 >= p.Tau0 {
			start = p.Tau0*p.K0 + (t0-p.Tau0)*p.K1
		}
		for j, b := range out {
			globalBit := start + j
			if covered[globalBit] {
				t.Fatalf("bit %d claimed by more than one tree window", globalBit)
			}
			covered[globalBit] = true

			want := byte(0)
			if chal[globalBit/8]&(1<<uint(globalBit%8)) != 0 {
				want = 1
			}
			if b != want {
				t.Errorf("tree %d bit %d = %d, want %d", t0, j, b, want)
			}
		}
	}
	for i, c := range covered {
		if !c {
			t.Errorf("global bit %d never covered by any tree window", i)
		}
	}
}

func TestChalDecOutOfRange(t *testing.T) {
	p := params.FAEST128S
	chal := make([]byte, p.LambdaBytes())
	if _, ok := ChalDec(chal, -1, p); ok {
		t.Error("expected !ok for negative tree index")
	}
	if _, ok := ChalDec(chal, p.Tau(), p); ok {
		t.Error("expected !ok for tree index == Tau()")
	}
}
