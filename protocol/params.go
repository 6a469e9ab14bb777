package protocol

import (
	"fmt"
	"math/big"
	"strings"

	"SIS-Sigma/modring"
)

// Params fixes one instance of the proof system: matrix dimensions n x m
// over Z_q, the sampling bounds for the commitment randomness and the
// secret, the norm-bound safety factor, and the advisory Gaussian width
// sigma (reported by the size harness, never used for sampling).
type Params struct {
	N            int      // rows of A, length of t and u
	M            int      // columns of A, length of s, y, c and z
	Q            *big.Int // prime modulus
	YRange       int64    // commitment randomness drawn from [-YRange, YRange]
	SRange       int64    // secret bound; 1 for ternary secrets
	SafetyFactor float64  // slack multiplier on the expected response norm
	Sigma        float64  // advisory width, size reporting only
}

// NewParams validates and returns a parameter set.
func NewParams(n, m int, q *big.Int, yRange, sRange int64, safetyFactor, sigma float64) (Params, error) {
	p := Params{N: n, M: m, Q: q, YRange: yRange, SRange: sRange, SafetyFactor: safetyFactor, Sigma: sigma}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	p.Q = new(big.Int).Set(q)
	return p, nil
}

// Default returns the small test instance: 4x4 over q=97.
func Default() (Params, error) {
	return NewParams(4, 4, big.NewInt(97), 10, 1, 10.0, 1.5)
}

// HighSecurity returns the 512x512 instance over the 32-bit prime
// 4294967291.
func HighSecurity() (Params, error) {
	return NewParams(512, 512, big.NewInt(4294967291), 10, 1, 10.0, 1.5)
}

// Validate checks every constructor constraint, wrapping each distinct
// failure in ErrInvalidParameter.
func (p Params) Validate() error {
	if p.N <= 0 || p.M <= 0 {
		return fmt.Errorf("%w: dimensions must be positive (n=%d m=%d)", ErrInvalidParameter, p.N, p.M)
	}
	if p.Q == nil || p.Q.Sign() <= 0 {
		return fmt.Errorf("%w: modulus must be positive", ErrInvalidParameter)
	}
	if p.YRange <= 0 || p.SRange <= 0 {
		return fmt.Errorf("%w: sampling ranges must be positive (y_range=%d s_range=%d)", ErrInvalidParameter, p.YRange, p.SRange)
	}
	if p.SafetyFactor <= 0 {
		return fmt.Errorf("%w: safety factor must be positive (got %g)", ErrInvalidParameter, p.SafetyFactor)
	}
	if p.Sigma <= 0 {
		return fmt.Errorf("%w: sigma must be positive (got %g)", ErrInvalidParameter, p.Sigma)
	}
	if !modring.IsPrime(p.Q) {
		return fmt.Errorf("%w: modulus %s is not prime", ErrInvalidParameter, p.Q)
	}
	// An honest response entry is bounded by y_range + y_range*s_range in
	// absolute value. It must stay strictly below q/2 or the balanced lift
	// used by the verifier's norm check no longer recovers y + c*s over
	// the integers and completeness breaks near the boundary.
	lift := new(big.Int).SetInt64(p.YRange)
	lift.Add(lift, new(big.Int).Mul(big.NewInt(p.YRange), big.NewInt(p.SRange)))
	halfQ := new(big.Int).Rsh(p.Q, 1)
	if lift.Cmp(halfQ) >= 0 {
		return fmt.Errorf("%w: y_range+y_range*s_range=%s must be below q/2=%s", ErrInvalidParameter, lift, halfQ)
	}
	return nil
}

// NormBound returns the verifier's squared-norm acceptance threshold for
// this parameter set.
func (p Params) NormBound() *big.Int {
	return NormBound(p.M, p.YRange, p.SRange, p.SafetyFactor)
}

// String renders a human-readable summary.
func (p Params) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Parameters:\n")
	fmt.Fprintf(&b, "  n = %d\n", p.N)
	fmt.Fprintf(&b, "  m = %d\n", p.M)
	fmt.Fprintf(&b, "  q = %s (bits: %d)\n", p.Q, p.Q.BitLen())
	fmt.Fprintf(&b, "  y_range = %d\n", p.YRange)
	fmt.Fprintf(&b, "  s_range = %d\n", p.SRange)
	fmt.Fprintf(&b, "  safety_factor = %g\n", p.SafetyFactor)
	fmt.Fprintf(&b, "  sigma = %g\n", p.Sigma)
	return b.String()
}
