package modring

// Package modring implements arithmetic over the prime ring Z_q with
// arbitrary-precision coefficients. A Ring value is an immutable
// descriptor of the modulus; all reductions and norm computations go
// through it so that no package-global modulus state exists.

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/big"
)

// Ring describes Z_q for a fixed positive prime modulus q. The zero value
// is not usable; construct with NewRing.
type Ring struct {
	q     *big.Int
	halfQ *big.Int // floor(q/2); canonical values above it center negative
}

// NewRing validates q and returns the ring descriptor. q must be a
// positive prime.
func NewRing(q *big.Int) (*Ring, error) {
	if q == nil || q.Sign() <= 0 {
		return nil, fmt.Errorf("modring: modulus must be positive")
	}
	if !IsPrime(q) {
		return nil, fmt.Errorf("modring: modulus must be prime")
	}
	r := &Ring{
		q:     new(big.Int).Set(q),
		halfQ: new(big.Int).Rsh(q, 1),
	}
	return r, nil
}

// Modulus returns a copy of q.
func (r *Ring) Modulus() *big.Int {
	return new(big.Int).Set(r.q)
}

// BitLen returns the bit length of q, i.e. ceil(log2 q) for any prime
// modulus above 2.
func (r *Ring) BitLen() int {
	return r.q.BitLen()
}

// Reduce returns the canonical representative of x in [0, q).
func (r *Ring) Reduce(x *big.Int) *big.Int {
	return new(big.Int).Mod(x, r.q)
}

// ReduceInto reduces x in place to its canonical representative.
func (r *Ring) ReduceInto(x *big.Int) {
	x.Mod(x, r.q)
}

// Center returns the balanced representative of x in (-q/2, q/2]:
// canonical values strictly above floor(q/2) are shifted down by q.
func (r *Ring) Center(x *big.Int) *big.Int {
	c := r.Reduce(x)
	if c.Cmp(r.halfQ) > 0 {
		c.Sub(c, r.q)
	}
	return c
}

// CenterInto reduces x in place to its balanced representative.
func (r *Ring) CenterInto(x *big.Int) {
	x.Mod(x, r.q)
	if x.Cmp(r.halfQ) > 0 {
		x.Sub(x, r.q)
	}
}

// RandomElement draws a uniform element of [0, q) from the given byte
// source by rejection on the top byte mask.
func (r *Ring) RandomElement(rnd io.Reader) (*big.Int, error) {
	if rnd == nil {
		return nil, fmt.Errorf("modring: nil randomness source")
	}
	bits := r.q.BitLen()
	nbytes := (bits + 7) / 8
	mask := byte(0xff >> (uint(nbytes*8-bits) % 8))
	buf := make([]byte, nbytes)
	x := new(big.Int)
	for {
		if _, err := io.ReadFull(rnd, buf); err != nil {
			return nil, fmt.Errorf("modring: prng read: %w", err)
		}
		buf[0] &= mask
		x.SetBytes(buf)
		if x.Cmp(r.q) < 0 {
			return x, nil
		}
	}
}

// RandUint64 reads eight bytes from the source as a little-endian word.
// Samplers combine it with a rejection threshold to avoid modulo bias.
func RandUint64(rnd io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(rnd, buf[:]); err != nil {
		return 0, fmt.Errorf("modring: prng read: %w", err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}
