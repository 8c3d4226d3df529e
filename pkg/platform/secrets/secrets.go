// Package secrets generates the unguessable keys behind private URLs.
package secrets

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// URLKeyLength matches the private URL keys handed to coaches, speakers and
// adjudicators.
const URLKeyLength = 8

const urlKeyAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// URLKey returns a random lowercase alphanumeric key.
func URLKey() (string, error) {
	return random(URLKeyLength, urlKeyAlphabet)
}

func random(n int, alphabet string) (string, error) {
	buf := make([]byte, n)
	limit := big.NewInt(int64(len(alphabet)))
	for i := range buf {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("could not generate key: %w", err)
		}
		buf[i] = alphabet[idx.Int64()]
	}
	return string(buf), nil
}
