// Package cryptox implements salted one-way hashing for passwords and
// recovery answers.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters. Stored hashes carry them, so changing these values
// only affects newly created hashes.
const (
	argonTime    uint32 = 1
	argonMemory  uint32 = 64 * 1024
	argonThreads uint8  = 4
	argonKeyLen  uint32 = 32
	saltLen             = 16
)

const scheme = "argon2id"

// ErrMalformedHash is returned when a stored hash cannot be parsed.
var ErrMalformedHash = errors.New("malformed secret hash")

// DeriveKey runs argon2id over secret and salt with the given cost.
func DeriveKey(secret, salt []byte, time, memory uint32, threads uint8) []byte {
	return argon2.IDKey(secret, salt, time, memory, threads, argonKeyLen)
}

// HashSecret returns a self-describing salted hash of secret:
//
//	argon2id$v=19$m=65536,t=1,p=4$<salt b64>$<key b64>
func HashSecret(secret string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("salt: %w", err)
	}

	key := DeriveKey([]byte(secret), salt, argonTime, argonMemory, argonThreads)

	return fmt.Sprintf("%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		scheme, argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// VerifySecret reports whether candidate hashes to encoded. The comparison
// of derived keys runs in constant time.
func VerifySecret(encoded, candidate string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 || parts[0] != scheme {
		return false, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[1], "v=%d", &version); err != nil || version != argon2.Version {
		return false, ErrMalformedHash
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[2], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return false, ErrMalformedHash
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(want) == 0 {
		return false, ErrMalformedHash
	}

	got := argon2.IDKey([]byte(candidate), salt, time, memory, threads, uint32(len(want)))

	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// NormalizeAnswer lower-cases a recovery answer. Answers are normalized
// both before hashing and before verification so "Rex" matches "rex".
func NormalizeAnswer(answer string) string {
	return strings.ToLower(answer)
}
