package protocol

import (
	"errors"
	"math/big"
	"testing"

	"SIS-Sigma/modring"
)

func defaultSession(t *testing.T, seed byte) *Session {
	t.Helper()
	p, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	sn, err := NewSeededSession(p, []byte{seed})
	if err != nil {
		t.Fatalf("NewSeededSession: %v", err)
	}
	return sn
}

func TestCompletenessDefaultPreset(t *testing.T) {
	sn := defaultSession(t, 1)
	for round := 0; round < 1000; round++ {
		u, c, z, err := sn.Round(nil)
		if err != nil {
			t.Fatalf("round %d: %v", round, err)
		}
		ok, err := sn.Verify(u, c, z)
		if err != nil {
			t.Fatalf("round %d verify: %v", round, err)
		}
		if !ok {
			t.Fatalf("round %d: honest proof rejected", round)
		}
	}
}

func TestCompletenessHighSecurityPreset(t *testing.T) {
	if testing.Short() {
		t.Skip("512x512 setup is slow in -short mode")
	}
	p, err := HighSecurity()
	if err != nil {
		t.Fatalf("HighSecurity: %v", err)
	}
	sn, err := NewSeededSession(p, []byte{42})
	if err != nil {
		t.Fatalf("NewSeededSession: %v", err)
	}
	u, c, z, err := sn.Round(nil)
	if err != nil {
		t.Fatalf("Round: %v", err)
	}
	ok, err := sn.Verify(u, c, z)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("honest high-security proof rejected")
	}
}

func TestTenSeededRoundsAllVerify(t *testing.T) {
	sn := defaultSession(t, 5)
	for round := 0; round < 10; round++ {
		u, c, z, err := sn.Round(nil)
		if err != nil {
			t.Fatalf("round %d: %v", round, err)
		}
		ok, err := sn.Verify(u, c, z)
		if err != nil {
			t.Fatalf("round %d verify: %v", round, err)
		}
		if !ok {
			t.Fatalf("round %d: honest proof rejected", round)
		}
	}
}

func TestTamperedResponseRejected(t *testing.T) {
	sn := defaultSession(t, 5)
	u, c, z, err := sn.Round(nil)
	if err != nil {
		t.Fatalf("Round: %v", err)
	}
	z[0].Add(z[0], big.NewInt(1))
	z[0].Mod(z[0], sn.Params().Q)
	ok, err := sn.Verify(u, c, z)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatalf("tampered z accepted")
	}
}

func TestTamperedCommitmentRejected(t *testing.T) {
	sn := defaultSession(t, 6)
	u, c, z, err := sn.Round(nil)
	if err != nil {
		t.Fatalf("Round: %v", err)
	}
	u[0].Add(u[0], big.NewInt(1))
	u[0].Mod(u[0], sn.Params().Q)
	ok, err := sn.Verify(u, c, z)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatalf("tampered u accepted")
	}
}

func TestDimensionPreservation(t *testing.T) {
	p, err := NewParams(3, 5, big.NewInt(97), 10, 1, 10.0, 1.5)
	if err != nil {
		t.Fatalf("NewParams: %v", err)
	}
	sn, err := NewSeededSession(p, []byte{7})
	if err != nil {
		t.Fatalf("NewSeededSession: %v", err)
	}
	u, err := sn.Commit()
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if len(u) != 3 {
		t.Fatalf("commit length: got %d want 3", len(u))
	}
	c := modring.VectorFromInt64([]int64{1, -1, 0, 1, 0})
	z, err := sn.Respond(c)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if len(z) != 5 {
		t.Fatalf("respond length: got %d want 5", len(z))
	}
	if len(sn.Syndrome()) != 3 {
		t.Fatalf("syndrome length: got %d want 3", len(sn.Syndrome()))
	}
}

func TestResponseEntriesCanonical(t *testing.T) {
	sn := defaultSession(t, 8)
	q := sn.Params().Q
	for round := 0; round < 50; round++ {
		_, _, z, err := sn.Round(nil)
		if err != nil {
			t.Fatalf("round %d: %v", round, err)
		}
		for i := range z {
			if z[i].Sign() < 0 || z[i].Cmp(q) >= 0 {
				t.Fatalf("round %d entry %d out of [0,q): %s", round, i, z[i])
			}
		}
	}
}

func TestSyndromeMatchesMatrix(t *testing.T) {
	sn := defaultSession(t, 9)
	r, err := modring.NewRing(sn.Params().Q)
	if err != nil {
		t.Fatalf("NewRing: %v", err)
	}
	// The stored syndrome must equal A*s mod q.
	a := sn.PublicMatrix()
	as, err := modring.MatVecMod(r, a, sn.s)
	if err != nil {
		t.Fatalf("MatVecMod: %v", err)
	}
	if !as.Equal(sn.Syndrome()) {
		t.Fatalf("syndrome mismatch: A*s = %v, t = %v", as, sn.Syndrome())
	}
	// A zero-challenge round then ties the public pieces together: z
	// equals y, so A*z must equal u.
	u, err := sn.Commit()
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	zero := modring.NewVector(sn.Params().M)
	z, err := sn.Respond(zero)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	az, err := modring.MatVecMod(r, a, z)
	if err != nil {
		t.Fatalf("MatVecMod: %v", err)
	}
	if !az.Equal(u) {
		t.Fatalf("zero challenge: A*z != u\nA*z = %v\nu  = %v", az, u)
	}
}

func TestZeroChallengeReturnsMask(t *testing.T) {
	sn := defaultSession(t, 10)
	if _, err := sn.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	y := sn.y.Clone()
	zero := modring.NewVector(sn.Params().M)
	z, err := sn.Respond(zero)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	for i := range z {
		want := sn.ring.Reduce(y[i])
		if z[i].Cmp(want) != 0 {
			t.Fatalf("entry %d: got %s want %s", i, z[i], want)
		}
	}
}

func TestConstantChallengesAccepted(t *testing.T) {
	sn := defaultSession(t, 11)
	for _, fill := range []int64{1, -1} {
		u, err := sn.Commit()
		if err != nil {
			t.Fatalf("Commit: %v", err)
		}
		c := make(modring.Vector, sn.Params().M)
		for i := range c {
			c[i] = big.NewInt(fill)
		}
		z, err := sn.Respond(c)
		if err != nil {
			t.Fatalf("Respond: %v", err)
		}
		ok, err := sn.Verify(u, c, z)
		if err != nil {
			t.Fatalf("Verify: %v", err)
		}
		if !ok {
			t.Fatalf("constant challenge %d rejected", fill)
		}
	}
}

func TestRespondDimensionMismatch(t *testing.T) {
	sn := defaultSession(t, 12)
	if _, err := sn.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	c := modring.NewVector(5)
	if _, err := sn.Respond(c); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("got %v want ErrDimensionMismatch", err)
	}
	// The failed call must not consume the commitment.
	good := modring.NewVector(sn.Params().M)
	if _, err := sn.Respond(good); err != nil {
		t.Fatalf("Respond after rejected challenge: %v", err)
	}
}

func TestRespondRequiresCommit(t *testing.T) {
	sn := defaultSession(t, 13)
	c := modring.NewVector(sn.Params().M)
	if _, err := sn.Respond(c); !errors.Is(err, ErrProtocolOrder) {
		t.Fatalf("got %v want ErrProtocolOrder", err)
	}
}

func TestRespondConsumesCommitment(t *testing.T) {
	sn := defaultSession(t, 14)
	if _, err := sn.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	c := modring.NewVector(sn.Params().M)
	if _, err := sn.Respond(c); err != nil {
		t.Fatalf("Respond: %v", err)
	}
	// Answering a second challenge from the same commitment would leak
	// the secret, so the session demands a fresh commit.
	if _, err := sn.Respond(c); !errors.Is(err, ErrProtocolOrder) {
		t.Fatalf("second respond: got %v want ErrProtocolOrder", err)
	}
}

func TestVerifyDimensionMismatch(t *testing.T) {
	sn := defaultSession(t, 15)
	u, c, z, err := sn.Round(nil)
	if err != nil {
		t.Fatalf("Round: %v", err)
	}
	if _, err := sn.Verify(u[:len(u)-1], c, z); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("short u: got %v want ErrDimensionMismatch", err)
	}
	if _, err := sn.Verify(u, c[:len(c)-1], z); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("short c: got %v want ErrDimensionMismatch", err)
	}
	if _, err := sn.Verify(u, c, append(z.Clone(), big.NewInt(0))); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("long z: got %v want ErrDimensionMismatch", err)
	}
}

func TestVerifyRejectsOversizedResponse(t *testing.T) {
	sn := defaultSession(t, 16)
	u, c, _, err := sn.Round(nil)
	if err != nil {
		t.Fatalf("Round: %v", err)
	}
	// A response at q/2 per coordinate blows far past the norm bound and
	// must be rejected without an error.
	huge := make(modring.Vector, sn.Params().M)
	for i := range huge {
		huge[i] = big.NewInt(48)
	}
	ok, err := sn.Verify(u, c, huge)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatalf("oversized response accepted")
	}
}

func TestSeededSessionsReproduce(t *testing.T) {
	a := defaultSession(t, 21)
	b := defaultSession(t, 21)
	ua, ca, za, err := a.Round(nil)
	if err != nil {
		t.Fatalf("Round: %v", err)
	}
	ub, cb, zb, err := b.Round(nil)
	if err != nil {
		t.Fatalf("Round: %v", err)
	}
	if !ua.Equal(ub) || !ca.Equal(cb) || !za.Equal(zb) {
		t.Fatalf("same master seed produced diverging transcripts")
	}
	if !a.Syndrome().Equal(b.Syndrome()) {
		t.Fatalf("same master seed produced diverging syndromes")
	}
}

func TestVerifyMatchesExplicitExpansion(t *testing.T) {
	// The verifier's rhs u + A*(c.s) must agree with the entrywise
	// expansion rhs_i = u_i + sum_j c_j*A[i][j]*s_j.
	sn := defaultSession(t, 22)
	u, c, z, err := sn.Round(nil)
	if err != nil {
		t.Fatalf("Round: %v", err)
	}
	p := sn.Params()
	r, err := modring.NewRing(p.Q)
	if err != nil {
		t.Fatalf("NewRing: %v", err)
	}
	a := sn.PublicMatrix()
	lhs, err := modring.MatVecMod(r, a, z)
	if err != nil {
		t.Fatalf("MatVecMod: %v", err)
	}
	tmp := new(big.Int)
	for i := 0; i < p.N; i++ {
		rhs := new(big.Int).Set(u[i])
		for j := 0; j < p.M; j++ {
			tmp.Mul(c[j], a.At(i, j))
			tmp.Mul(tmp, sn.s[j])
			rhs.Add(rhs, tmp)
		}
		r.ReduceInto(rhs)
		if lhs[i].Cmp(rhs) != 0 {
			t.Fatalf("row %d: A*z = %s, expansion = %s", i, lhs[i], rhs)
		}
	}
}

func TestCloseWipesSecrets(t *testing.T) {
	sn := defaultSession(t, 23)
	if _, err := sn.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	s := sn.s
	y := sn.y
	sn.Close()
	for i := range s {
		if s[i].Sign() != 0 {
			t.Fatalf("secret entry %d not wiped", i)
		}
	}
	for i := range y {
		if y[i].Sign() != 0 {
			t.Fatalf("mask entry %d not wiped", i)
		}
	}
}

func TestNilSourceUsesSystemEntropy(t *testing.T) {
	p, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	sn, err := NewSession(p, nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	u, c, z, err := sn.Round(nil)
	if err != nil {
		t.Fatalf("Round: %v", err)
	}
	ok, err := sn.Verify(u, c, z)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("honest proof rejected")
	}
}

func BenchmarkVerifyDefault(b *testing.B) {
	p, err := Default()
	if err != nil {
		b.Fatalf("Default: %v", err)
	}
	sn, err := NewSeededSession(p, []byte{99})
	if err != nil {
		b.Fatalf("NewSeededSession: %v", err)
	}
	u, c, z, err := sn.Round(nil)
	if err != nil {
		b.Fatalf("Round: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := sn.Verify(u, c, z); err != nil {
			b.Fatalf("Verify: %v", err)
		}
	}
}
