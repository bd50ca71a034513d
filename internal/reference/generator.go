// Package reference issues the public EDU-XXXXXX identifiers handed to
// applicants after they submit the questionnaire.
package reference

import (
	"fmt"
	"regexp"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// Prefix starts every reference number.
	Prefix = "EDU-"
	// Length is the number of random symbols after the prefix.
	Length = 6
	// Alphabet leaves out 0/O and 1/I so numbers survive being read aloud.
	Alphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"
)

var pattern = regexp.MustCompile(`^EDU-[A-Z0-9]{6}$`)

// Generator produces candidate reference numbers. Uniqueness is enforced by
// the store; a generator only has to make collisions unlikely.
type Generator interface {
	Generate() (string, error)
}

// NanoidGenerator draws symbols from a CSPRNG.
type NanoidGenerator struct{}

// NewGenerator returns the default generator.
func NewGenerator() *NanoidGenerator {
	return &NanoidGenerator{}
}

// Generate returns a fresh reference number such as EDU-7KQ2MZ.
func (NanoidGenerator) Generate() (string, error) {
	id, err := gonanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("generate reference number: %w", err)
	}
	return Prefix + id, nil
}

// Valid reports whether s has the reference number shape.
func Valid(s string) bool {
	return pattern.MatchString(s)
}
