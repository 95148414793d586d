package credential

import (
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"
)

// cheap keeps the suite fast; verification reads params from the hash anyway.
var cheap = Params{Memory: 64, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestHash_DefaultFormat(t *testing.T) {
	h, err := Hash("correct-horse-battery-staple")
	require.NoError(t, err)

	re := regexp.MustCompile(`^\$argon2id\$v=19\$m=19456,t=2,p=1\$[A-Za-z0-9+/]{22}\$[A-Za-z0-9+/]{43}$`)
	assert.Regexp(t, re, h)
}

func TestHashVerify_Scenario(t *testing.T) {
	h, err := Hash("correct-horse-battery-staple")
	require.NoError(t, err)

	ok, err := Verify("correct-horse-battery-staple", h)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify("wrong-password", h)
	require.NoError(t, err, "a wrong password is not an error")
	assert.False(t, ok)
}

func TestHash_RoundTrip(t *testing.T) {
	hasher := NewHasher(cheap)

	passwords := []string{"", "a", "pässwörd", "with spaces and\ttabs", string(make([]byte, 1024))}
	for _, p := range passwords {
		t.Run(fmt.Sprintf("len=%d", len(p)), func(t *testing.T) {
			h, err := hasher.Hash(p)
			require.NoError(t, err)

			ok, err := hasher.Verify(p, h)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = hasher.Verify(p+"x", h)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestHash_SaltIsFreshEveryCall(t *testing.T) {
	hasher := NewHasher(cheap)

	h1, err := hasher.Hash("same")
	require.NoError(t, err)
	h2, err := hasher.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)

	for _, h := range []string{h1, h2} {
		ok, err := hasher.Verify("same", h)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestVerify_UsesEncodedParamsNotHasherParams(t *testing.T) {
	h, err := NewHasher(cheap).Hash("pw")
	require.NoError(t, err)

	other := NewHasher(Params{Memory: 128, Iterations: 3, Parallelism: 2, SaltLength: 32, KeyLength: 64})
	ok, err := other.Verify("pw", h)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_Argon2i(t *testing.T) {
	salt := []byte("0123456789abcdef")
	key := argon2.Key([]byte("pw"), salt, 2, 64, 1, 32)
	encoded := fmt.Sprintf("$argon2i$v=19$m=64,t=2,p=1$%s$%s", b64.EncodeToString(salt), b64.EncodeToString(key))

	ok, err := Verify("pw", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify("nope", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_ParamOrderIsNotSignificant(t *testing.T) {
	salt := []byte("fixed-salt-16byt")
	key := argon2.IDKey([]byte("pw"), salt, 1, 64, 1, 32)
	encoded := fmt.Sprintf("$argon2id$v=19$p=1,t=1,m=64$%s$%s", b64.EncodeToString(salt), b64.EncodeToString(key))

	ok, err := Verify("pw", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_MalformedHash(t *testing.T) {
	salt := b64.EncodeToString([]byte("0123456789abcdef"))
	key := b64.EncodeToString(make([]byte, 32))

	tests := []struct {
		name    string
		encoded string
	}{
		{"not a hash", "not-a-valid-hash"},
		{"empty", ""},
		{"bcrypt", "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"},
		{"argon2d", "$argon2d$v=19$m=64,t=1,p=1$" + salt + "$" + key},
		{"missing version", "$argon2id$m=64,t=1,p=1$" + salt + "$" + key + "$"},
		{"old version", "$argon2id$v=16$m=64,t=1,p=1$" + salt + "$" + key},
		{"missing param", "$argon2id$v=19$m=64,t=1$" + salt + "$" + key},
		{"duplicate param", "$argon2id$v=19$m=64,m=64,t=1$" + salt + "$" + key},
		{"unknown param", "$argon2id$v=19$m=64,t=1,p=1,x=2$" + salt + "$" + key},
		{"zero time", "$argon2id$v=19$m=64,t=0,p=1$" + salt + "$" + key},
		{"huge memory", "$argon2id$v=19$m=99999999,t=1,p=1$" + salt + "$" + key},
		{"memory below lanes", "$argon2id$v=19$m=8,t=1,p=4$" + salt + "$" + key},
		{"bad salt b64", "$argon2id$v=19$m=64,t=1,p=1$!!!!$" + key},
		{"short salt", "$argon2id$v=19$m=64,t=1,p=1$" + b64.EncodeToString([]byte("abc")) + "$" + key},
		{"bad key b64", "$argon2id$v=19$m=64,t=1,p=1$" + salt + "$***"},
		{"padded salt", "$argon2id$v=19$m=64,t=1,p=1$" + salt + "==$" + key},
		{"trailing field", "$argon2id$v=19$m=64,t=1,p=1$" + salt + "$" + key + "$extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ok bool
			var err error
			require.NotPanics(t, func() { ok, err = Verify("anything", tt.encoded) })

			assert.False(t, ok)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrHashParse)
		})
	}
}

func TestHash_SaltSourceFailure(t *testing.T) {
	orig := randBytes
	randBytes = func(int) ([]byte, error) { return nil, errors.New("entropy exhausted") }
	t.Cleanup(func() { randBytes = orig })

	h, err := NewHasher(cheap).Hash("pw")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHashing)
	assert.Contains(t, err.Error(), "entropy exhausted")
	assert.Empty(t, h)
}

func TestHash_InvalidParams(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"zero iterations", Params{Memory: 64, Iterations: 0, Parallelism: 1, SaltLength: 16, KeyLength: 32}},
		{"zero parallelism", Params{Memory: 64, Iterations: 1, Parallelism: 0, SaltLength: 16, KeyLength: 32}},
		{"memory too low", Params{Memory: 8, Iterations: 1, Parallelism: 2, SaltLength: 16, KeyLength: 32}},
		{"short salt", Params{Memory: 64, Iterations: 1, Parallelism: 1, SaltLength: 4, KeyLength: 32}},
		{"short key", Params{Memory: 64, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHasher(tt.p).Hash("pw")
			assert.ErrorIs(t, err, ErrHashing)
		})
	}
}

func TestEncodedHash_StringParsesBack(t *testing.T) {
	e := &encodedHash{
		algorithm: algArgon2id,
		version:   argon2.Version,
		params:    Params{Memory: 64, Iterations: 3, Parallelism: 2},
		salt:      []byte("0123456789abcdef"),
		key:       []byte("0123456789abcdef0123456789abcdef"),
	}

	got, err := parseEncodedHash(e.String())
	require.NoError(t, err)
	assert.Equal(t, e.algorithm, got.algorithm)
	assert.Equal(t, e.params.Memory, got.params.Memory)
	assert.Equal(t, e.params.Iterations, got.params.Iterations)
	assert.Equal(t, e.params.Parallelism, got.params.Parallelism)
	assert.Equal(t, e.salt, got.salt)
	assert.Equal(t, e.key, got.key)
}
