// Package strutil contains functions to help generating and validating the
// opaque identifiers this subsystem mints (resumeId, the external-challenge
// state value, and the anti-forgery token).
package strutil

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const charset string = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Random returns a URL-safe random string of the given length.
func Random(length int) string {
	result := strings.Builder{}
	charsetLength := big.NewInt(int64(len(charset)))

	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, charsetLength)
		if err != nil {
			panic(err)
		}
		result.WriteByte(charset[n.Int64()])
	}

	return result.String()
}

// ExceedsMax reports whether s is longer than max. Nothing in this
// repository calls it: flowctx.Context checks MaxInputParamLength with its
// own length comparisons.
func ExceedsMax(s string, max int) bool {
	return len(s) > max
}
