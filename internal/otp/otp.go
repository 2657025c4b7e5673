package otp

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// Generator produces numeric one-time codes of a fixed digit length.
type Generator struct {
	digits int
}

func NewGenerator(digits int) *Generator {
	if digits <= 0 {
		digits = 4
	}
	return &Generator{digits: digits}
}

// Generate returns a uniformly random code in [10^(n-1), 10^n), so a 4-digit
// code is always 1000..9999. Codes never carry leading zeros.
func (g *Generator) Generate() (string, error) {
	min := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(g.digits-1)), nil)
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(g.digits)), nil)

	n, err := rand.Int(rand.Reader, new(big.Int).Sub(max, min))
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(new(big.Int).Add(n, min).Int64(), 10), nil
}
