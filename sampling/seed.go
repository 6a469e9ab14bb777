package sampling

import "golang.org/x/crypto/sha3"

// seedDomain separates this module's seed derivation from any other
// SHAKE-256 user hashing the same material.
const seedDomain = "sigma/seed/v1"

// DeriveSeed expands a master seed into a 32-byte subseed bound to a
// purpose label. Distinct labels yield computationally independent
// streams, so one master seed can drive the matrix, secret and
// commitment samplers without correlation.
func DeriveSeed(master []byte, label string) []byte {
	h := sha3.NewShake256()
	h.Write([]byte(seedDomain))
	h.Write([]byte{byte(len(label))})
	h.Write([]byte(label))
	h.Write(master)
	out := make([]byte, 32)
	h.Read(out)
	return out
}
