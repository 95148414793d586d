package credential

import "errors"

var (
	// ErrHashing is returned when a password hash could not be derived.
	ErrHashing = errors.New("failed to hash password")

	// ErrHashParse is returned when an encoded hash is not a well-formed
	// argon2 PHC string. A wrong password is not an error.
	ErrHashParse = errors.New("failed to parse hash")
)
