// Package params holds the immutable parameter tables for the VOLE
// commitment core: security level, seed-tree shape, and row counts. A
// ParamSet is resolved once per run and threaded through every call; the
// core never renegotiates parameters mid-call.
package params

import "fmt"

// ParamSet is an immutable instantiation of the VOLE commitment core,
// keyed by instance name (e.g. "FAEST-128s"). All fields are fixed for
// the lifetime of a commit/reconstruct call.
type ParamSet struct {
	Name string

	// Lambda is the security parameter in bits.
	Lambda int

	// Tau0/K0 describe the first Tau0 seed trees, each of depth K0.
	// Tau1/K1 describe the remaining Tau1 trees, each of depth K1.
	// K0 >= K1 always holds.
	Tau0, K0 int
	Tau1, K1 int

	// Ell is the circuit-defined VOLE row count in bits, before the
	// universal-hash tail is folded in.
	Ell int

	// UniversalHashBBits is the length, in bits, of the universal-hash
	// tail folded into the effective row count.
	UniversalHashBBits int
}

// IVSize is the byte length of the PRG counter/nonce used throughout the
// core, for both the outer PRG calls and the internal zero-IV seed-tree
// expansion.
const IVSize = 16

// LambdaBytes returns lambda/8.
func (p ParamSet) LambdaBytes() int { return p.Lambda / 8 }

// Tau returns the total number of seed trees, Tau0+Tau1.
func (p ParamSet) Tau() int { return p.Tau0 + p.Tau1 }

// TotalColumns returns the total VOLE column count, Tau0*K0 + Tau1*K1.
func (p ParamSet) TotalColumns() int { return p.Tau0*p.K0 + p.Tau1*p.K1 }

// EllHat returns the effective row count in bits: the circuit row count
// plus one security-parameter-sized blinding row plus the universal-hash
// tail.
func (p ParamSet) EllHat() int { return p.Ell + p.Lambda + p.UniversalHashBBits }

// EllHatBytes returns ceil(EllHat()/8).
func (p ParamSet) EllHatBytes() int { return (p.EllHat() + 7) / 8 }

// RowBytes returns the byte width of one row of the RMO matrix: ceil of
// the total VOLE column count over 8. For every named instance below
// this equals LambdaBytes(), matching spec §3's "V (RMO) ... each
// lambda_B bytes wide", since Tau0*K0 + Tau1*K1 == Lambda by
// construction.
func (p ParamSet) RowBytes() int { return (p.TotalColumns() + 7) / 8 }

// DepthAt returns the seed-tree depth for tree index t (0-based), or an
// error if t is out of range [0, Tau()).
func (p ParamSet) DepthAt(t int) (int, error) {
	switch {
	case t < 0 || t >= p.Tau():
		return 0, fmt.Errorf("params: tree index %d out of range [0,%d)", t, p.Tau())
	case t < p.Tau0:
		return p.K0, nil
	default:
		return p.K1, nil
	}
}

// ColumnOffset returns the running global-column offset of tree index t,
// i.e. the sum of depths of all trees before it.
func (p ParamSet) ColumnOffset(t int) int {
	if t <= p.Tau0 {
		return t * p.K0
	}
	return p.Tau0*p.K0 + (t-p.Tau0)*p.K1
}

// Validate checks internal consistency of the parameter set.
func (p ParamSet) Validate() error {
	if p.Lambda != 128 && p.Lambda != 192 && p.Lambda != 256 {
		return fmt.Errorf("params: lambda must be 128, 192 or 256, got %d", p.Lambda)
	}
	if p.K0 < p.K1 {
		return fmt.Errorf("params: k0 (%d) must be >= k1 (%d)", p.K0, p.K1)
	}
	if p.Tau0 < 0 || p.Tau1 < 0 || p.Tau0+p.Tau1 == 0 {
		return fmt.Errorf("params: tau0/tau1 must be non-negative and sum to at least 1")
	}
	if p.Ell < 0 {
		return fmt.Errorf("params: ell must be non-negative")
	}
	return nil
}

// Named instances, one small ("s") parameter set per security level,
// shaped after the public FAEST parameter tables. Ell is an illustrative
// circuit size; callers embedding this core in a concrete proof system
// substitute their own circuit-derived Ell via a custom ParamSet.
var (
	FAEST128S = ParamSet{
		Name: "FAEST-128s",
		Lambda: 128,
		Tau0: 7, K0: 12,
		Tau1: 4, K1: 11,
		Ell:                1600,
		UniversalHashBBits: 128,
	}
	FAEST128F = ParamSet{
		Name: "FAEST-128f",
		Lambda: 128,
		Tau0: 16, K0: 8,
		Tau1: 0, K1: 8,
		Ell:                1600,
		UniversalHashBBits: 128,
	}
	FAEST192S = ParamSet{
		Name: "FAEST-192s",
		Lambda: 192,
		Tau0: 8, K0: 12,
		Tau1: 8, K1: 12,
		Ell:                3264,
		UniversalHashBBits: 192,
	}
	FAEST192F = ParamSet{
		Name: "FAEST-192f",
		Lambda: 192,
		Tau0: 24, K0: 8,
		Tau1: 0, K1: 8,
		Ell:                3264,
		UniversalHashBBits: 192,
	}
	FAEST256S = ParamSet{
		Name: "FAEST-256s",
		Lambda: 256,
		Tau0: 14, K0: 12,
		Tau1: 8, K1: 11,
		Ell:                4000,
		UniversalHashBBits: 256,
	}
	FAEST256F = ParamSet{
		Name: "FAEST-256f",
		Lambda: 256,
		Tau0: 32, K0: 8,
		Tau1: 0, K1: 8,
		Ell:                4000,
		UniversalHashBBits: 256,
	}
)

// ByName resolves a named parameter set, for config-driven callers (e.g.
// the volebench CLI) that select an instance by string.
func ByName(name string) (ParamSet, error) {
	for _, p := range []ParamSet{FAEST128S, FAEST128F, FAEST192S, FAEST192F, FAEST256S, FAEST256F} {
		if p.Name == name {
			return p, nil
		}
	}
	return ParamSet{}, fmt.Errorf("params: unknown instance %q", name)
}
