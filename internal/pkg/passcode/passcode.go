package passcode

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

const (
	codeMin = 100000
	codeMax = 999999
)

// Generator mints one-time passcodes.
type Generator interface {
	Generate() (string, error)
}

// Numeric is a Generator producing 6-digit codes in [100000, 999999].
type Numeric struct{}

// NewNumeric returns a 6-digit numeric passcode generator.
func NewNumeric() *Numeric {
	return &Numeric{}
}

// Generate returns a uniformly random 6-digit code.
func (*Numeric) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+codeMin, 10), nil
}
