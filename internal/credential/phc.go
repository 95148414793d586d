package credential

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	algArgon2id = "argon2id"
	algArgon2i  = "argon2i"

	maxMemoryKiB  = 1 << 20
	maxIterations = 64
	minSaltLen    = 8
	maxSaltLen    = 64
	minKeyLen     = 4
	maxKeyLen     = 128
)

// b64 is the PHC string alphabet: standard base64 without padding.
var b64 = base64.RawStdEncoding

// encodedHash is the parsed form of
//
//	$argon2id$v=19$m=19456,t=2,p=1$<salt>$<key>
type encodedHash struct {
	algorithm string
	version   int
	params    Params
	salt      []byte
	key       []byte
}

func (e *encodedHash) String() string {
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		e.algorithm, e.version,
		e.params.Memory, e.params.Iterations, e.params.Parallelism,
		b64.EncodeToString(e.salt), b64.EncodeToString(e.key))
}

// derive recomputes the key for password using the parameters and salt of e.
func (e *encodedHash) derive(password []byte) []byte {
	keyLen := uint32(len(e.key))
	if e.algorithm == algArgon2i {
		return argon2.Key(password, e.salt, e.params.Iterations, e.params.Memory, e.params.Parallelism, keyLen)
	}
	return argon2.IDKey(password, e.salt, e.params.Iterations, e.params.Memory, e.params.Parallelism, keyLen)
}

func parseEncodedHash(s string) (*encodedHash, error) {
	parts := strings.Split(s, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, fmt.Errorf("%w: expected 5 '$'-separated fields", ErrHashParse)
	}

	e := &encodedHash{algorithm: parts[1]}
	switch e.algorithm {
	case algArgon2id, algArgon2i:
	default:
		return nil, fmt.Errorf("%w: unsupported algorithm %q", ErrHashParse, e.algorithm)
	}

	v, ok := strings.CutPrefix(parts[2], "v=")
	if !ok {
		return nil, fmt.Errorf("%w: missing version", ErrHashParse)
	}
	version, err := strconv.Atoi(v)
	if err != nil || version != argon2.Version {
		return nil, fmt.Errorf("%w: unsupported version %q", ErrHashParse, v)
	}
	e.version = version

	if err := parseParams(parts[3], &e.params); err != nil {
		return nil, err
	}

	if e.salt, err = b64.DecodeString(parts[4]); err != nil {
		return nil, fmt.Errorf("%w: salt: %v", ErrHashParse, err)
	}
	if n := len(e.salt); n < minSaltLen || n > maxSaltLen {
		return nil, fmt.Errorf("%w: salt length %d out of range", ErrHashParse, n)
	}

	if e.key, err = b64.DecodeString(parts[5]); err != nil {
		return nil, fmt.Errorf("%w: hash: %v", ErrHashParse, err)
	}
	if n := len(e.key); n < minKeyLen || n > maxKeyLen {
		return nil, fmt.Errorf("%w: hash length %d out of range", ErrHashParse, n)
	}

	return e, nil
}

// parseParams reads the "m=..,t=..,p=.." segment. Each of the three keys
// must appear exactly once; order is not significant.
func parseParams(segment string, p *Params) error {
	seen := make(map[string]bool, 3)
	for _, kv := range strings.Split(segment, ",") {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || seen[k] {
			return fmt.Errorf("%w: malformed parameter %q", ErrHashParse, kv)
		}
		seen[k] = true

		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil || n == 0 {
			return fmt.Errorf("%w: invalid value for %q", ErrHashParse, k)
		}

		switch k {
		case "m":
			if n > maxMemoryKiB {
				return fmt.Errorf("%w: memory cost %d too large", ErrHashParse, n)
			}
			p.Memory = uint32(n)
		case "t":
			if n > maxIterations {
				return fmt.Errorf("%w: time cost %d too large", ErrHashParse, n)
			}
			p.Iterations = uint32(n)
		case "p":
			if n > 255 {
				return fmt.Errorf("%w: parallelism %d too large", ErrHashParse, n)
			}
			p.Parallelism = uint8(n)
		default:
			return fmt.Errorf("%w: unknown parameter %q", ErrHashParse, k)
		}
	}

	if !seen["m"] || !seen["t"] || !seen["p"] {
		return fmt.Errorf("%w: parameters m, t and p are required", ErrHashParse)
	}
	if p.Memory < 8*uint32(p.Parallelism) {
		return fmt.Errorf("%w: memory cost below 8*parallelism", ErrHashParse)
	}
	return nil
}
