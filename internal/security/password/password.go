// Package password hashes user secrets for storage and verifies them.
//
// bcrypt only consumes the first 72 bytes of its input, silently truncating
// anything longer. To accept secrets of unbounded length, the secret is
// first reduced to a 32-byte SHA-256 digest and the digest is what bcrypt
// hashes. The stored value is bcrypt's standard self-describing string
// (algorithm, cost and salt are all recoverable from it), so previously
// stored hashes stay verifiable across releases.
package password

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor. It is a build-time constant, never a
// per-call parameter: raising it is the single knob for keeping offline
// brute force expensive.
const Cost = 12

// ErrMalformedHash reports a stored credential that is not a valid bcrypt
// string. It must never be treated as "wrong password".
var ErrMalformedHash = errors.New("stored credential is not a valid bcrypt hash")

// preHash reduces a secret of any length to bcrypt's effective input size.
func preHash(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	return sum[:]
}

// Hash derives a storable hash from a plaintext secret. Each call uses a
// fresh random salt, so hashing the same secret twice yields two different
// stored values, both of which verify.
func Hash(secret string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(preHash(secret), Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether secret matches the stored hash. A wrong secret is
// (false, nil); only a malformed stored value is an error. The comparison
// itself is bcrypt's constant-time check.
func Verify(secret, stored string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(stored), preHash(secret))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
}
