package protocol

import (
	"fmt"
	"math/bits"
)

// ProofSize reports the wire cost of one transcript in bits: u and z
// carry one ceil(log2 q)-bit word per coordinate, the challenge two bits
// per ternary digit.
type ProofSize struct {
	CommitmentBits uint64
	ChallengeBits  uint64
	ResponseBits   uint64
	TotalBits      uint64
}

// CommitmentBytes rounds the commitment cost up to whole bytes.
func (ps ProofSize) CommitmentBytes() uint64 {
	return (ps.CommitmentBits + 7) / 8
}

// ChallengeBytes rounds the challenge cost up to whole bytes.
func (ps ProofSize) ChallengeBytes() uint64 {
	return (ps.ChallengeBits + 7) / 8
}

// ResponseBytes rounds the response cost up to whole bytes.
func (ps ProofSize) ResponseBytes() uint64 {
	return (ps.ResponseBits + 7) / 8
}

// TotalBytes rounds the total up to whole bytes.
func (ps ProofSize) TotalBytes() uint64 {
	return (ps.TotalBits + 7) / 8
}

// String renders the per-move breakdown.
func (ps ProofSize) String() string {
	return fmt.Sprintf("u: %d bits, c: %d bits, z: %d bits, total: %d bits (%d bytes)",
		ps.CommitmentBits, ps.ChallengeBits, ps.ResponseBits, ps.TotalBits, ps.TotalBytes())
}

// CalculateProofSize is a pure function of the parameters: the moves'
// sizes are fully determined by (n, m, q). Overflow in the accounting is
// reported as ErrInternalArithmetic.
func CalculateProofSize(p Params) (ProofSize, error) {
	if err := p.Validate(); err != nil {
		return ProofSize{}, err
	}
	coeffBits := uint64(p.Q.BitLen())
	var ps ProofSize
	var carry uint64
	hi, lo := bits.Mul64(uint64(p.N), coeffBits)
	if hi != 0 {
		return ProofSize{}, fmt.Errorf("%w: commitment size overflow", ErrInternalArithmetic)
	}
	ps.CommitmentBits = lo
	hi, lo = bits.Mul64(uint64(p.M), 2)
	if hi != 0 {
		return ProofSize{}, fmt.Errorf("%w: challenge size overflow", ErrInternalArithmetic)
	}
	ps.ChallengeBits = lo
	hi, lo = bits.Mul64(uint64(p.M), coeffBits)
	if hi != 0 {
		return ProofSize{}, fmt.Errorf("%w: response size overflow", ErrInternalArithmetic)
	}
	ps.ResponseBits = lo
	ps.TotalBits, carry = bits.Add64(ps.CommitmentBits, ps.ChallengeBits, 0)
	if carry != 0 {
		return ProofSize{}, fmt.Errorf("%w: total size overflow", ErrInternalArithmetic)
	}
	ps.TotalBits, carry = bits.Add64(ps.TotalBits, ps.ResponseBits, 0)
	if carry != 0 {
		return ProofSize{}, fmt.Errorf("%w: total size overflow", ErrInternalArithmetic)
	}
	return ps, nil
}
