package modring

import "math/big"

// NormSquared returns the squared Euclidean norm of the balanced lift of
// v: each entry is centered into (-q/2, q/2] and the squares are summed
// over the integers.
func NormSquared(r *Ring, v Vector) *big.Int {
	sum := new(big.Int)
	sq := new(big.Int)
	c := new(big.Int)
	for i := range v {
		c.Set(v[i])
		r.CenterInto(c)
		sq.Mul(c, c)
		sum.Add(sum, sq)
	}
	return sum
}
