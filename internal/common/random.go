package common

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// RandomNumericID returns a random decimal string of exactly n digits whose
// first digit is never zero (100000..999999 for n=6).
func RandomNumericID(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.Grow(n)

	first, err := rand.Int(rand.Reader, big.NewInt(9))
	if err != nil {
		return "", err
	}
	sb.WriteByte(byte('1' + first.Int64()))

	for i := 1; i < n; i++ {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		sb.WriteByte(byte('0' + d.Int64()))
	}

	return sb.String(), nil
}
