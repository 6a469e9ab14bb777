package modring

import "math/big"

var (
	two   = big.NewInt(2)
	three = big.NewInt(3)
)

// IsPrime reports whether n is prime by trial division up to floor(sqrt n).
// Deterministic and exact; adequate for the modulus sizes this protocol
// runs with (a probabilistic screen rejects large composites early).
func IsPrime(n *big.Int) bool {
	if n == nil || n.Cmp(two) < 0 {
		return false
	}
	if n.Cmp(three) <= 0 {
		return true
	}
	if n.Bit(0) == 0 {
		return false
	}
	// Cheap composite screen before committing to the division loop.
	if !n.ProbablyPrime(20) {
		return false
	}
	sqrt := new(big.Int).Sqrt(n)
	rem := new(big.Int)
	for i := big.NewInt(3); i.Cmp(sqrt) <= 0; i.Add(i, two) {
		if rem.Mod(n, i).Sign() == 0 {
			return false
		}
	}
	return true
}
