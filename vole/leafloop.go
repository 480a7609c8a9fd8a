package vole

import (
	"fmt"

	"github.com/faest-go/vole/internal/oracle"
	"github.com/faest-go/vole/internal/prg"
)

// onLeafFn is invoked once per leaf, after r = PRG(sd_i) has been
// computed, so the caller can deposit r into its chosen output layout.
type onLeafFn func(i int, r []byte) error

// runLeafLoop is the common body of both CMO and RMO construction (spec
// §4.3 step 2): iterate leaves 0..2^depth-1 in order, optionally absorb
// com_i into h, expand sd_i into outLenBytes of PRG output, optionally
// fold it into u, then hand it to onLeaf for the layout-specific write.
func runLeafLoop(iv []byte, src LeafSource, depth, outLenBytes int, u []byte, h1 *oracle.H1, onLeaf onLeafFn) error {
	n := 1 << uint(depth)
	r := make([]byte, outLenBytes)

	for i := 0; i < n; i++ {
		sd, com, err := src.GetSdCom(i)
		if err != nil {
			return fmt.Errorf("vole: leaf %d: %w", i, err)
		}
		if h1 != nil {
			h1.Absorb(com)
		}
		if err := prg.ExpandInto(sd, iv, r); err != nil {
			return fmt.Errorf("vole: leaf %d expand: %w", i, err)
		}
		if u != nil {
			xorInto(u, r)
		}
		if onLeaf != nil {
			if err := onLeaf(i, r); err != nil {
				return err
			}
		}
	}
	return nil
}
