package sampling

import (
	"fmt"
	"math"
	"math/big"

	"SIS-Sigma/modring"
)

// boundedUint64 draws a uniform word in [0, span) by rejection: words at
// or above the largest multiple of span are discarded so every residue
// is equally likely.
func boundedUint64(src *Source, span uint64) (uint64, error) {
	if span == 0 {
		return 0, fmt.Errorf("sampling: empty range")
	}
	threshold := (math.MaxUint64 / span) * span
	for {
		word, err := modring.RandUint64(src)
		if err != nil {
			return 0, err
		}
		if word < threshold {
			return word % span, nil
		}
	}
}

// Ternary samples a length-n vector with entries independently uniform
// on {-1, 0, 1}.
func Ternary(src *Source, n int) (modring.Vector, error) {
	if src == nil {
		return nil, fmt.Errorf("sampling: nil source")
	}
	if n < 0 {
		return nil, fmt.Errorf("sampling: negative length %d", n)
	}
	out := make(modring.Vector, n)
	for i := range out {
		w, err := boundedUint64(src, 3)
		if err != nil {
			return nil, err
		}
		out[i] = big.NewInt(int64(w) - 1)
	}
	return out, nil
}

// Uniform samples a length-n vector with entries independently uniform
// on the 2*bound+1 integers of [-bound, bound].
func Uniform(src *Source, n int, bound int64) (modring.Vector, error) {
	if src == nil {
		return nil, fmt.Errorf("sampling: nil source")
	}
	if n < 0 {
		return nil, fmt.Errorf("sampling: negative length %d", n)
	}
	if bound <= 0 {
		return nil, fmt.Errorf("sampling: bound must be positive (got %d)", bound)
	}
	span := 2*uint64(bound) + 1
	out := make(modring.Vector, n)
	for i := range out {
		w, err := boundedUint64(src, span)
		if err != nil {
			return nil, err
		}
		out[i] = big.NewInt(int64(w) - bound)
	}
	return out, nil
}

// UniformZq draws a uniform element of [0, q) for the given ring.
func UniformZq(src *Source, r *modring.Ring) (*big.Int, error) {
	if src == nil {
		return nil, fmt.Errorf("sampling: nil source")
	}
	return r.RandomElement(src)
}
