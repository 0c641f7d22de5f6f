// Package security contains the credential primitives: one-time code
// generation and the signed token maker.
package security

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
)

// GenerateCode returns a numeric one-time code of the given length,
// drawn uniformly from [0, 10^length) with leading zeros preserved.
func GenerateCode(length int) (string, error) {
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)

	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("failed to draw random code, %w", err)
	}

	return fmt.Sprintf("%0*d", length, n), nil
}

// CodesEqual compares two codes in constant time so the comparison
// can't leak the position of the first wrong digit.
func CodesEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
