package protocol

// The Session owns one SIS instance across the three protocol moves.
// Construction samples the public matrix A and the ternary secret s and
// publishes the syndrome t = A*s mod q. Commit draws fresh randomness y
// and publishes u = A*y mod q; Respond folds the verifier's challenge
// into z = y + c*s; Verify replays the algebra against the norm bound.
//
// Respond consumes the commitment randomness: y is zeroed and the state
// returns to fresh, so answering two different challenges from one
// commitment (which would hand the secret to the verifier via the
// standard extractor) fails with ErrProtocolOrder instead.

import (
	"fmt"
	"math/big"

	"SIS-Sigma/modring"
	"SIS-Sigma/sampling"
)

type sessionState int

const (
	stateFresh sessionState = iota
	stateCommitted
)

// Session holds the prover-side state of one protocol instance. Verify
// only reads A, s and the cached bound, so a Session also serves as the
// verifier in tests and local harnesses.
type Session struct {
	params Params
	ring   *modring.Ring
	a      *modring.Matrix // public matrix, immutable after setup
	s      modring.Vector  // ternary secret, never leaves the session
	t      modring.Vector  // public syndrome A*s mod q
	y      modring.Vector  // commitment randomness, live only between Commit and Respond
	src    *sampling.Source
	bound  *big.Int
	state  sessionState
}

// NewSession validates p and runs key generation. A nil src is replaced
// with a fresh system-entropy source; tests inject keyed sources for
// reproducible runs.
func NewSession(p Params, src *sampling.Source) (*Session, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		var err error
		src, err = sampling.NewSource()
		if err != nil {
			return nil, err
		}
	}
	ring, err := modring.NewRing(p.Q)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternalArithmetic, err)
	}
	a, err := modring.RandomMatrix(ring, p.N, p.M, src)
	if err != nil {
		return nil, err
	}
	s, err := sampling.Ternary(src, p.M)
	if err != nil {
		return nil, err
	}
	t, err := modring.MatVecMod(ring, a, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternalArithmetic, err)
	}
	return &Session{
		params: p,
		ring:   ring,
		a:      a,
		s:      s,
		t:      t,
		src:    src,
		bound:  p.NormBound(),
		state:  stateFresh,
	}, nil
}

// NewSeededSession derives the sampling stream deterministically from a
// master seed, so two runs with the same seed produce identical keys,
// commitments and responses.
func NewSeededSession(p Params, masterSeed []byte) (*Session, error) {
	src, err := sampling.NewKeyedSource(sampling.DeriveSeed(masterSeed, "session"))
	if err != nil {
		return nil, err
	}
	return NewSession(p, src)
}

// Params returns the session's parameter set.
func (sn *Session) Params() Params {
	return sn.params
}

// PublicMatrix returns a copy of A.
func (sn *Session) PublicMatrix() *modring.Matrix {
	return sn.a.Clone()
}

// Syndrome returns a copy of t = A*s mod q.
func (sn *Session) Syndrome() modring.Vector {
	return sn.t.Clone()
}

// Commit samples fresh commitment randomness y uniform on
// [-y_range, y_range]^m, overwriting and wiping any previous y, and
// returns the commitment u = A*y mod q.
func (sn *Session) Commit() (modring.Vector, error) {
	y, err := sampling.Uniform(sn.src, sn.params.M, sn.params.YRange)
	if err != nil {
		return nil, err
	}
	if sn.y != nil {
		sn.y.Zero()
	}
	sn.y = y
	u, err := modring.MatVecMod(sn.ring, sn.a, sn.y)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternalArithmetic, err)
	}
	sn.state = stateCommitted
	return u, nil
}

// Respond computes z_i = (y_i + c_i*s_i) mod q in canonical form for the
// supplied challenge, then retires y. A commitment answers exactly one
// challenge; call Commit again before the next round.
func (sn *Session) Respond(challenge modring.Vector) (modring.Vector, error) {
	if len(challenge) != sn.params.M {
		return nil, fmt.Errorf("%w: challenge length %d, want %d", ErrDimensionMismatch, len(challenge), sn.params.M)
	}
	if sn.state != stateCommitted {
		return nil, ErrProtocolOrder
	}
	z := make(modring.Vector, sn.params.M)
	tmp := new(big.Int)
	for i := 0; i < sn.params.M; i++ {
		tmp.Mul(challenge[i], sn.s[i])
		tmp.Add(tmp, sn.y[i])
		z[i] = sn.ring.Reduce(tmp)
	}
	sn.y.Zero()
	sn.y = nil
	sn.state = stateFresh
	return z, nil
}

// Verify checks a transcript (u, c, z) against this session's instance:
// first the squared norm of the balanced lift of z against the bound,
// then the linear relation A*z = u + A*(c.s) over Z_q. Malformed
// dimensions are an error; a well-formed transcript that fails either
// predicate returns false.
func (sn *Session) Verify(u, challenge, z modring.Vector) (bool, error) {
	if len(u) != sn.params.N {
		return false, fmt.Errorf("%w: commitment length %d, want %d", ErrDimensionMismatch, len(u), sn.params.N)
	}
	if len(challenge) != sn.params.M {
		return false, fmt.Errorf("%w: challenge length %d, want %d", ErrDimensionMismatch, len(challenge), sn.params.M)
	}
	if len(z) != sn.params.M {
		return false, fmt.Errorf("%w: response length %d, want %d", ErrDimensionMismatch, len(z), sn.params.M)
	}
	if modring.NormSquared(sn.ring, z).Cmp(sn.bound) > 0 {
		return false, nil
	}
	lhs, err := modring.MatVecMod(sn.ring, sn.a, z)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInternalArithmetic, err)
	}
	// cs_i = c_i * s_i, so the right-hand side is u + A*(c.s), exactly
	// what an honest z = y + c.s produces under A.
	cs := make(modring.Vector, sn.params.M)
	for i := 0; i < sn.params.M; i++ {
		cs[i] = new(big.Int).Mul(challenge[i], sn.s[i])
	}
	acs, err := modring.MatVecMod(sn.ring, sn.a, cs)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInternalArithmetic, err)
	}
	rhs := new(big.Int)
	for i := 0; i < sn.params.N; i++ {
		rhs.Add(u[i], acs[i])
		sn.ring.ReduceInto(rhs)
		if lhs[i].Cmp(rhs) != 0 {
			return false, nil
		}
	}
	return true, nil
}

// Round runs one honest commit/challenge/respond exchange, drawing the
// challenge from challengeSrc (or the session source when nil). Used by
// the benchmarks and the tests.
func (sn *Session) Round(challengeSrc *sampling.Source) (u, c, z modring.Vector, err error) {
	if challengeSrc == nil {
		challengeSrc = sn.src
	}
	u, err = sn.Commit()
	if err != nil {
		return nil, nil, nil, err
	}
	c, err = GenerateChallenge(challengeSrc, sn.params.M)
	if err != nil {
		return nil, nil, nil, err
	}
	z, err = sn.Respond(c)
	if err != nil {
		return nil, nil, nil, err
	}
	return u, c, z, nil
}

// Close wipes the secret material held by the session. The Session must
// not be used afterwards.
func (sn *Session) Close() {
	if sn.s != nil {
		sn.s.Zero()
		sn.s = nil
	}
	if sn.y != nil {
		sn.y.Zero()
		sn.y = nil
	}
	sn.state = stateFresh
}
