package pool

import (
	"fmt"
	"math/big"
	"strings"
)

const fixedPrecision = 256

// ParseDecimal parses a decimal string such as "0.0001" or "1e-4" exactly
func ParseDecimal(s string) (*big.Rat, error) {
	r, ok := new(big.Rat).SetString(strings.TrimSpace(s))
	if !ok {
		return nil, fmt.Errorf("invalid decimal %q", s)
	}
	return r, nil
}

// ToFixed scales r to 18-decimal fixed point, truncating toward zero
func ToFixed(r *big.Rat) *big.Int {
	scaled := new(big.Rat).Mul(r, new(big.Rat).SetInt(One))
	return new(big.Int).Quo(scaled.Num(), scaled.Denom())
}

// ParseFixed parses a decimal string straight into 18-decimal fixed point
func ParseFixed(s string) (*big.Int, error) {
	r, err := ParseDecimal(s)
	if err != nil {
		return nil, err
	}
	return ToFixed(r), nil
}

// SqrtFixed returns sqrt(r) in 18-decimal fixed point
func SqrtFixed(r *big.Rat) (*big.Int, error) {
	if r.Sign() < 0 {
		return nil, fmt.Errorf("square root of negative value %s", r.FloatString(18))
	}
	// sqrt(r) * 1e18 == sqrt(r * 1e36)
	scaled := new(big.Rat).Mul(r, new(big.Rat).SetInt(new(big.Int).Mul(One, One)))
	f := new(big.Float).SetPrec(fixedPrecision).SetRat(scaled)
	root := new(big.Float).SetPrec(fixedPrecision).Sqrt(f)
	out, _ := root.Int(nil)
	return out, nil
}
