// Package roundid generates sortable identifiers for blackjack rounds.
//
// IDs are UUIDv7 values rendered as 26 characters of Crockford base32, so
// they sort by creation time and are short enough for log lines.
package roundid

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// Crockford's base32 alphabet, lower case
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in an encoded ID
const Length = 26

// Generator produces round IDs from an optional entropy source
type Generator struct {
	entropy io.Reader
}

// NewGenerator returns a generator reading random bits from entropy.
// A nil reader uses crypto/rand.
func NewGenerator(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// New returns a fresh round ID using crypto/rand
func New() string {
	return NewGenerator(nil).New()
}

// New returns a fresh round ID. It panics only if the entropy source fails,
// which for crypto/rand means the system is unusable.
func (g *Generator) New() string {
	var (
		id  uuid.UUID
		err error
	)
	if g.entropy != nil {
		id, err = uuid.NewV7FromReader(g.entropy)
	} else {
		id, err = uuid.NewV7()
	}
	if err != nil {
		panic("failed to generate round id: " + err.Error())
	}
	return Encode(id)
}

// Encode renders a UUID as 26 base32 characters
func Encode(id uuid.UUID) string {
	n := new(big.Int).SetBytes(id[:])
	out := make([]byte, Length)
	mask := big.NewInt(31)
	digit := new(big.Int)
	for i := Length - 1; i >= 0; i-- {
		digit.And(n, mask)
		out[i] = alphabet[digit.Int64()]
		n.Rsh(n, 5)
	}
	return string(out)
}

// Decode parses an encoded ID back into a UUID
func Decode(s string) (uuid.UUID, error) {
	if err := Validate(s); err != nil {
		return uuid.UUID{}, err
	}
	n := new(big.Int)
	for _, ch := range s {
		n.Lsh(n, 5)
		n.Or(n, big.NewInt(int64(strings.IndexRune(alphabet, ch))))
	}
	var id uuid.UUID
	n.FillBytes(id[:])
	return id, nil
}

// Validate checks that s is a well formed round ID
func Validate(s string) error {
	if len(s) != Length {
		return fmt.Errorf("round ID must be exactly %d characters, got %d", Length, len(s))
	}
	// 26 chars hold 130 bits; the top two must be zero for a 128-bit value
	if s[0] > '7' {
		return fmt.Errorf("round ID first character must be 0-7, got %c", s[0])
	}
	for i, ch := range s {
		if !strings.ContainsRune(alphabet, ch) {
			return fmt.Errorf("invalid character %c at position %d", ch, i)
		}
	}
	return nil
}
