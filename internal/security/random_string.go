package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// InstanceIDAlphabet avoids characters that need escaping in URLs or element ids.
const (
	InstanceIDAlphabet = "abcdefghijkmnpqrstuvwxyz23456789"
	InstanceIDLength   = 12
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString returns a cryptographically secure, unbiased string of the requested length.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}

	return string(value), nil
}

// NewInstanceID returns an identifier for a mounted chart. It is safe to embed
// in routes and element ids.
func NewInstanceID() (string, error) {
	return RandomString(InstanceIDLength, InstanceIDAlphabet)
}
