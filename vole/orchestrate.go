package vole

import (
	"bytes"
	"fmt"

	"github.com/faest-go/vole/internal/bitutil"
	"github.com/faest-go/vole/internal/oracle"
	"github.com/faest-go/vole/internal/prg"
	"github.com/faest-go/vole/params"
	"github.com/faest-go/vole/vcommit"
)

// Decommitment is one tree's persisted opening (spec §6 "Persisted
// format"): the co-path seeds ordered root-adjacent to leaf-adjacent,
// and the hidden leaf's own commitment.
type Decommitment struct {
	Pdec      [][]byte
	ComHidden []byte
}

// CommitResult bundles stream_vole_commit's full output (spec §4.6):
// the outer commitment, tree 0's exposed u, the correction vector for
// trees 1..tau-1, and the per-tree materialized commitments a caller
// needs to produce decommitments from.
type CommitResult struct {
	Hcom  []byte
	U     []byte
	C     [][]byte // len Tau()-1; C[t-1] = U XOR U_t
	Trees []*vcommit.Commitment
}

// subSeeds expands rootKey into one sub-root seed per tree with a
// single PRG call, as spec §4.6 describes ("one PRG call" of
// lambdaBytes*tau bytes).
func subSeeds(rootKey, iv []byte, p params.ParamSet) ([][]byte, error) {
	lambdaBytes := p.LambdaBytes()
	out := make([]byte, lambdaBytes*p.Tau())
	if err := prg.ExpandInto(rootKey, iv, out); err != nil {
		return nil, fmt.Errorf("vole: sub-seed expansion: %w", err)
	}
	seeds := make([][]byte, p.Tau())
	for t := range seeds {
		seeds[t] = out[t*lambdaBytes : (t+1)*lambdaBytes]
	}
	return seeds, nil
}

// StreamVoleCommit is stream_vole_commit (spec §4.6): it derives tau
// sub-root seeds, materializes each tree, folds every h_t into hcom,
// and produces u_0 plus the correction vector c_{t-1} = u_0 XOR u_t for
// t = 1..tau-1. Trees are materialized (not streamed) here because the
// caller needs every tree's full commitment to later answer arbitrary
// decommitment requests; see vcommit.OpenStream for the
// bounded-memory single-tree path used internally by Decommit.
func StreamVoleCommit(rootKey, iv []byte, p params.ParamSet) (*CommitResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	seeds, err := subSeeds(rootKey, iv, p)
	if err != nil {
		return nil, err
	}

	lambdaBytes := p.LambdaBytes()
	outLenBytes := p.EllHatBytes()
	tau := p.Tau()

	trees := make([]*vcommit.Commitment, tau)
	us := make([][]byte, tau)
	h1 := oracle.NewH1()

	for t := 0; t < tau; t++ {
		depth, err := p.DepthAt(t)
		if err != nil {
			return nil, err
		}
		tree, err := vcommit.Commit(seeds[t], iv, depth)
		if err != nil {
			return nil, fmt.Errorf("vole: tree %d commit: %w", t, err)
		}
		trees[t] = tree
		h1.Absorb(tree.H)

		u := make([]byte, outLenBytes)
		if _, err := ConstructCMO(iv, Materialized(tree), depth, lambdaBytes, outLenBytes, 0, 0, u, nil, false); err != nil {
			return nil, fmt.Errorf("vole: tree %d u: %w", t, err)
		}
		us[t] = u
	}

	c := make([][]byte, tau-1)
	for t := 1; t < tau; t++ {
		ct := make([]byte, outLenBytes)
		copy(ct, us[0])
		xorInto(ct, us[t])
		c[t-1] = ct
	}

	return &CommitResult{
		Hcom:  h1.Finalize(2 * lambdaBytes),
		U:     us[0],
		C:     c,
		Trees: trees,
	}, nil
}

// Decommit produces the per-tree decommitment for a challenge,
// re-deriving each tree's sub-root seed deterministically from rootKey
// rather than requiring the caller to keep CommitResult.Trees around,
// so this can be called long after StreamVoleCommit without retained
// per-tree state (spec §4.1 streaming rationale extended to the
// decommitment path).
func Decommit(rootKey, iv []byte, p params.ParamSet, chal []byte) ([]Decommitment, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	seeds, err := subSeeds(rootKey, iv, p)
	if err != nil {
		return nil, err
	}

	out := make([]Decommitment, p.Tau())
	for t := range out {
		b, ok := bitutil.ChalDec(chal, t, p)
		if !ok {
			return nil, fmt.Errorf("vole: chaldec failed for tree %d", t)
		}
		pdec, comHidden, err := vcommit.OpenStream(seeds[t], iv, b)
		if err != nil {
			return nil, fmt.Errorf("vole: decommit tree %d: %w", t, err)
		}
		out[t] = Decommitment{Pdec: pdec, ComHidden: comHidden}
	}
	return out, nil
}

// treeWindow clips the global column window [start, start+length) to
// tree t's local column range, returning ok=false when the tree lies
// entirely outside the window.
func treeWindow(p params.ParamSet, t, start, length int) (begin, end int, ok bool) {
	depth, err := p.DepthAt(t)
	if err != nil {
		return 0, 0, false
	}
	offset := p.ColumnOffset(t)
	winStart, winEnd := start, start+length
	lo, hi := offset, offset+depth
	if winEnd <= lo || winStart >= hi {
		return 0, 0, false
	}
	if winStart > lo {
		begin = winStart - lo
	}
	end = depth
	if winEnd < hi {
		end = winEnd - lo
	}
	return begin, end, true
}

// PartialVoleCommitCMO is partial_vole_commit_cmo (spec §4.6): it
// re-derives the tau sub-root seeds, materializes every tree (u and h
// require the full leaf loop regardless of the requested window), and
// writes only the column slice [start, start+length) of v, split
// across whichever trees intersect the window.
func PartialVoleCommitCMO(rootKey, iv []byte, p params.ParamSet, start, length int) (hcom, u []byte, c, v [][]byte, err error) {
	if err := p.Validate(); err != nil {
		return nil, nil, nil, nil, err
	}
	if start < 0 || length < 0 || start+length > p.TotalColumns() {
		return nil, nil, nil, nil, fmt.Errorf("vole: column window [%d,%d) exceeds %d total columns", start, start+length, p.TotalColumns())
	}
	seeds, err := subSeeds(rootKey, iv, p)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	lambdaBytes := p.LambdaBytes()
	outLenBytes := p.EllHatBytes()
	tau := p.Tau()

	us := make([][]byte, tau)
	vCols := make([][]byte, 0, length)
	h1 := oracle.NewH1()

	for t := 0; t < tau; t++ {
		depth, err := p.DepthAt(t)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		tree, err := vcommit.Commit(seeds[t], iv, depth)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("vole: tree %d commit: %w", t, err)
		}
		h1.Absorb(tree.H)

		begin, end, ok := treeWindow(p, t, start, length)
		uT := make([]byte, outLenBytes)
		var vT []byte
		if ok {
			vT = make([]byte, (end-begin)*outLenBytes)
		}
		if _, err := ConstructCMO(iv, Materialized(tree), depth, lambdaBytes, outLenBytes, begin, end, uT, vT, false); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("vole: tree %d construct: %w", t, err)
		}
		us[t] = uT
		if ok {
			for col := 0; col < (end-begin); col++ {
				vCols = append(vCols, vT[col*outLenBytes:(col+1)*outLenBytes])
			}
		}
	}

	c = make([][]byte, tau-1)
	for t := 1; t < tau; t++ {
		ct := make([]byte, outLenBytes)
		copy(ct, us[0])
		xorInto(ct, us[t])
		c[t-1] = ct
	}

	return h1.Finalize(2 * lambdaBytes), us[0], c, vCols, nil
}

// PartialVoleCommitRMO is the row-major twin of PartialVoleCommitCMO:
// start/length here address rows of the ellhat-bit row space, and the
// produced v is length rows of p.RowBytes() bytes spanning all trees'
// columns in one row-major matrix (the window is over rows, not
// columns, matching spec §6's partial_vole_commit_rmo signature).
func PartialVoleCommitRMO(rootKey, iv []byte, p params.ParamSet, start, length int) (hcom, u []byte, c [][]byte, v []byte, err error) {
	if err := p.Validate(); err != nil {
		return nil, nil, nil, nil, err
	}
	seeds, err := subSeeds(rootKey, iv, p)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	lambdaBytes := p.LambdaBytes()
	outLenBytes := p.EllHatBytes()
	rowBytes := p.RowBytes()
	tau := p.Tau()

	us := make([][]byte, tau)
	v = make([]byte, length*rowBytes)
	h1 := oracle.NewH1()

	for t := 0; t < tau; t++ {
		depth, err := p.DepthAt(t)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		tree, err := vcommit.Commit(seeds[t], iv, depth)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("vole: tree %d commit: %w", t, err)
		}
		h1.Absorb(tree.H)

		colOffset := p.ColumnOffset(t)
		uT := make([]byte, outLenBytes)
		if _, err := ConstructRMO(iv, Materialized(tree), depth, lambdaBytes, outLenBytes, start, length, rowBytes, colOffset, uT, v, false); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("vole: tree %d construct: %w", t, err)
		}
		us[t] = uT
	}

	c = make([][]byte, tau-1)
	for t := 1; t < tau; t++ {
		ct := make([]byte, outLenBytes)
		copy(ct, us[0])
		xorInto(ct, us[t])
		c[t-1] = ct
	}

	return h1.Finalize(2 * lambdaBytes), us[0], c, v, nil
}

// reconstructTree rebuilds the view for tree t from its decommitment.
func reconstructTree(iv []byte, p params.ParamSet, t int, chal []byte, dec Decommitment) (*vcommit.Reconstructed, error) {
	b, ok := bitutil.ChalDec(chal, t, p)
	if !ok {
		return nil, fmt.Errorf("vole: chaldec failed for tree %d", t)
	}
	return vcommit.Reconstruct(dec.Pdec, dec.ComHidden, b, iv, p.LambdaBytes())
}

// PartialVoleReconstructCMO is partial_vole_reconstruct_cmo (spec
// §4.5-4.6): it rebuilds every tree's view from its decommitment and
// assembles the requested column slice of Q.
func PartialVoleReconstructCMO(iv, chal []byte, decs []Decommitment, p params.ParamSet, start, length int) (q [][]byte, err error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(decs) != p.Tau() {
		return nil, fmt.Errorf("vole: expected %d decommitments, got %d", p.Tau(), len(decs))
	}
	if start < 0 || length < 0 || start+length > p.TotalColumns() {
		return nil, fmt.Errorf("vole: column window [%d,%d) exceeds %d total columns", start, start+length, p.TotalColumns())
	}

	outLenBytes := p.EllHatBytes()
	q = make([][]byte, 0, length)

	for t := 0; t < p.Tau(); t++ {
		begin, end, ok := treeWindow(p, t, start, length)
		if !ok {
			continue
		}
		r, err := reconstructTree(iv, p, t, chal, decs[t])
		if err != nil {
			return nil, fmt.Errorf("vole: tree %d reconstruct: %w", t, err)
		}
		qT, err := ReconstructCMO(iv, r, outLenBytes, begin, end)
		if err != nil {
			return nil, fmt.Errorf("vole: tree %d construct Q: %w", t, err)
		}
		for col := 0; col < end-begin; col++ {
			q = append(q, qT[col*outLenBytes:(col+1)*outLenBytes])
		}
	}
	return q, nil
}

// PartialVoleReconstructRMO is the RMO twin of
// PartialVoleReconstructCMO, windowed over rows instead of columns.
func PartialVoleReconstructRMO(iv, chal []byte, decs []Decommitment, p params.ParamSet, start, length int) (q []byte, err error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(decs) != p.Tau() {
		return nil, fmt.Errorf("vole: expected %d decommitments, got %d", p.Tau(), len(decs))
	}

	rowBytes := p.RowBytes()
	q = make([]byte, length*rowBytes)

	for t := 0; t < p.Tau(); t++ {
		r, err := reconstructTree(iv, p, t, chal, decs[t])
		if err != nil {
			return nil, fmt.Errorf("vole: tree %d reconstruct: %w", t, err)
		}
		colOffset := p.ColumnOffset(t)
		qT, err := ReconstructRMO(iv, r, p.EllHatBytes(), start, length, rowBytes, colOffset)
		if err != nil {
			return nil, fmt.Errorf("vole: tree %d construct Q: %w", t, err)
		}
		xorInto(q, qT)
	}
	return q, nil
}

// VoleReconstructHcom is vole_reconstruct_hcom (spec §6): a verify-only
// path that rebuilds each tree's h from its decommitment and folds them
// into hcom, without materializing u/v at all.
func VoleReconstructHcom(iv, chal []byte, decs []Decommitment, p params.ParamSet) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(decs) != p.Tau() {
		return nil, fmt.Errorf("vole: expected %d decommitments, got %d", p.Tau(), len(decs))
	}

	h1 := oracle.NewH1()
	for t := 0; t < p.Tau(); t++ {
		r, err := reconstructTree(iv, p, t, chal, decs[t])
		if err != nil {
			return nil, fmt.Errorf("vole: tree %d reconstruct: %w", t, err)
		}
		h1.Absorb(r.H)
	}
	return h1.Finalize(2 * p.LambdaBytes()), nil
}

// VerifyHcom reports whether a recomputed hcom matches the committer's
// recorded value (spec §8 Property 6 "tampering detection").
func VerifyHcom(got, want []byte) bool {
	return bytes.Equal(got, want)
}
