package sampling

// Package sampling provides the protocol's randomness: a seedable
// cryptographic source and bias-free bounded integer samplers. All
// randomness flows through a Source so tests can pin seeds while
// production callers get an unpredictable stream.

import (
	"crypto/rand"
	"fmt"

	"github.com/tuneinsight/lattigo/v4/utils"
)

// Source wraps a lattigo PRNG (blake2b XOF). A keyed Source replays the
// same stream for the same seed; an unkeyed one is seeded from the
// operating system.
type Source struct {
	prng utils.PRNG
}

// NewSource returns a Source keyed with fresh operating-system entropy.
func NewSource() (*Source, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("sampling: system entropy: %w", err)
	}
	return NewKeyedSource(key)
}

// NewKeyedSource returns a deterministic Source for the given seed.
func NewKeyedSource(seed []byte) (*Source, error) {
	prng, err := utils.NewKeyedPRNG(seed)
	if err != nil {
		return nil, fmt.Errorf("sampling: keyed prng: %w", err)
	}
	return &Source{prng: prng}, nil
}

// Read implements io.Reader by draining the underlying PRNG.
func (s *Source) Read(p []byte) (int, error) {
	return s.prng.Read(p)
}

// Fork derives an independent child Source bound to the given label. The
// child stream is a function of the parent state and the label, so two
// forks with distinct labels never collide.
func (s *Source) Fork(label string) (*Source, error) {
	material := make([]byte, 32)
	if _, err := s.prng.Read(material); err != nil {
		return nil, fmt.Errorf("sampling: fork read: %w", err)
	}
	return NewKeyedSource(DeriveSeed(material, label))
}
