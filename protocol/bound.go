package protocol

import (
	"math"
	"math/big"
)

// expectedMaskContribution is the expectation of sum y_i^2 for y_i
// uniform on {-Y, ..., Y}: m*(Y^2-1)/3.
func expectedMaskContribution(m int, yRange int64) float64 {
	y := float64(yRange)
	return float64(m) * (y*y - 1) / 3.0
}

// expectedSecretContribution is the expectation of sum (c_i*s_i)^2 for
// ternary-like c and s bounded by S: m*S^2.
func expectedSecretContribution(m int, sRange int64) float64 {
	s := float64(sRange)
	return float64(m) * s * s
}

// NormBound returns the verifier's squared-norm threshold
// B^2 = ceil(safetyFactor * (m*(Y^2-1)/3 + m*S^2)). Honest responses
// concentrate around the expectation; the factor leaves completeness
// slack while keeping forged short responses hard to produce.
func NormBound(m int, yRange, sRange int64, safetyFactor float64) *big.Int {
	expected := expectedMaskContribution(m, yRange) + expectedSecretContribution(m, sRange)
	return ceilToInt(safetyFactor * expected)
}

// ceilToInt converts a nonnegative float to its integer ceiling without
// losing precision beyond 2^53 the way a direct int64 cast would.
func ceilToInt(f float64) *big.Int {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return new(big.Int)
	}
	bf := new(big.Float).SetFloat64(f)
	n, acc := bf.Int(nil)
	if acc == big.Below {
		n.Add(n, big.NewInt(1))
	}
	return n
}
