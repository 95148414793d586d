// Package common holds small byte helpers: secure random generation and
// wiping of sensitive buffers.
package common

import "crypto/rand"

// GenerateRandBytes returns size bytes read from the system CSPRNG.
func GenerateRandBytes(size int) ([]byte, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// WipeByteArray overwrites b with zeros. Nil slices are ignored.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
