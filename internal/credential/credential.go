// Package credential turns plaintext passwords into self-describing argon2
// PHC strings and verifies passwords against them.
//
// Hashes produced here look like
//
//	$argon2id$v=19$m=19456,t=2,p=1$<salt>$<key>
//
// and carry every parameter needed to verify them later, so stored hashes
// stay valid when DefaultParams changes. The package holds no state and is
// safe for concurrent use.
package credential

import (
	"crypto/subtle"
	"fmt"

	"github.com/dashlens/dashlens/internal/common"
	"golang.org/x/crypto/argon2"
)

// Params are the argon2id cost parameters used when hashing.
//
// Memory is expressed in KiB. Verification never consults Params: it reads
// the parameters encoded in the stored hash.
type Params struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultParams match the argon2 reference defaults (19 MiB, 2 passes,
// 1 lane, 16-byte salt, 32-byte key).
var DefaultParams = Params{
	Memory:      19 * 1024,
	Iterations:  2,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

// randBytes is a seam for tests that need the salt source to fail.
var randBytes = common.GenerateRandBytes

// Hasher hashes passwords with a fixed set of Params.
type Hasher struct {
	params Params
}

// NewHasher returns a Hasher using p.
func NewHasher(p Params) *Hasher {
	return &Hasher{params: p}
}

var defaultHasher = NewHasher(DefaultParams)

// Hash derives a PHC-encoded argon2id hash of password with DefaultParams.
func Hash(password string) (string, error) {
	return defaultHasher.Hash(password)
}

// Verify reports whether password matches the encoded hash.
//
// A malformed hash yields false together with an error wrapping
// ErrHashParse; a wrong password yields false and a nil error.
func Verify(password, encoded string) (bool, error) {
	return defaultHasher.Verify(password, encoded)
}

func (p Params) validate() error {
	switch {
	case p.Iterations == 0:
		return fmt.Errorf("iterations must be positive")
	case p.Parallelism == 0:
		return fmt.Errorf("parallelism must be positive")
	case p.Memory < 8*uint32(p.Parallelism):
		return fmt.Errorf("memory must be at least 8*parallelism KiB")
	case p.SaltLength < minSaltLen || p.SaltLength > maxSaltLen:
		return fmt.Errorf("salt length %d out of range", p.SaltLength)
	case p.KeyLength < minKeyLen || p.KeyLength > maxKeyLen:
		return fmt.Errorf("key length %d out of range", p.KeyLength)
	}
	return nil
}

// Hash derives a PHC-encoded argon2id hash of password. A fresh random salt
// is generated for every call. Any failure is reported as ErrHashing; there
// is no fallback to a cheaper scheme.
func (h *Hasher) Hash(password string) (encoded string, err error) {
	if err := h.params.validate(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashing, err)
	}

	salt, err := randBytes(int(h.params.SaltLength))
	if err != nil {
		return "", fmt.Errorf("%w: salt generation: %v", ErrHashing, err)
	}

	defer func() {
		if r := recover(); r != nil {
			encoded, err = "", fmt.Errorf("%w: %v", ErrHashing, r)
		}
	}()

	pw := []byte(password)
	defer common.WipeByteArray(pw)

	key := argon2.IDKey(pw, salt, h.params.Iterations, h.params.Memory, h.params.Parallelism, h.params.KeyLength)

	e := &encodedHash{
		algorithm: algArgon2id,
		version:   argon2.Version,
		params:    h.params,
		salt:      salt,
		key:       key,
	}
	return e.String(), nil
}

// Verify parses encoded and compares the recomputed key in constant time.
// The Hasher's own Params play no part in verification.
func (h *Hasher) Verify(password, encoded string) (bool, error) {
	e, err := parseEncodedHash(encoded)
	if err != nil {
		return false, err
	}

	pw := []byte(password)
	defer common.WipeByteArray(pw)

	candidate := e.derive(pw)
	return subtle.ConstantTimeCompare(e.key, candidate) == 1, nil
}
