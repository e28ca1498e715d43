package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Hasher hashes and verifies passwords with Argon2id, keyed by a server-side
// secret. The password is pre-hashed with HMAC-SHA256 under the secret before
// it enters Argon2, so a stored hash alone is not enough to verify a
// candidate password — the secret is required as an out-of-band key, and
// rotating it invalidates every stored hash.
type Hasher struct {
	secret      []byte
	memory      uint32
	iterations  uint32
	parallelism uint8
	saltLength  uint32
	keyLength   uint32
}

// NewHasher creates a keyed Argon2id hasher with OWASP-recommended
// parameters.
func NewHasher(secret string) *Hasher {
	return &Hasher{
		secret:      []byte(secret),
		memory:      64 * 1024, // 64 MiB
		iterations:  3,
		parallelism: 2,
		saltLength:  16,
		keyLength:   32,
	}
}

// Hash derives a hash from a password and a fresh random salt.
// Returns the hash in PHC string format: $argon2id$v=19$m=65536,t=3,p=2$salt$hash
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key := argon2.IDKey(h.prehash(password), salt, h.iterations, h.memory, h.parallelism, h.keyLength)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Key := base64.RawStdEncoding.EncodeToString(key)

	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.memory, h.iterations, h.parallelism, b64Salt, b64Key,
	)

	return encoded, nil
}

// Verify recomputes the keyed hash for a candidate password and compares it
// against the stored encoding in constant time.
func (h *Hasher) Verify(password, encodedHash string) (bool, error) {
	memory, iterations, parallelism, salt, key, err := decodeHash(encodedHash)
	if err != nil {
		return false, err
	}

	otherKey := argon2.IDKey(h.prehash(password), salt, iterations, memory, parallelism, uint32(len(key)))

	return subtle.ConstantTimeCompare(key, otherKey) == 1, nil
}

// prehash keys the password with the server secret before the memory-hard
// step.
func (h *Hasher) prehash(password string) []byte {
	mac := hmac.New(sha256.New, h.secret)
	mac.Write([]byte(password))
	return mac.Sum(nil)
}

// decodeHash parses a PHC-format Argon2id hash.
func decodeHash(encodedHash string) (memory, iterations uint32, parallelism uint8, salt, key []byte, err error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return 0, 0, 0, nil, nil, errors.New("invalid hash format")
	}

	if parts[1] != "argon2id" {
		return 0, 0, 0, nil, nil, errors.New("unsupported algorithm")
	}

	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return 0, 0, 0, nil, nil, err
	}
	if version != argon2.Version {
		return 0, 0, 0, nil, nil, errors.New("incompatible argon2 version")
	}

	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		return 0, 0, 0, nil, nil, err
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return 0, 0, 0, nil, nil, err
	}

	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return 0, 0, 0, nil, nil, err
	}

	return memory, iterations, parallelism, salt, key, nil
}
