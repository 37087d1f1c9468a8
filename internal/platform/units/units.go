// Package units converts between wei and decimal ether strings at the
// presentation boundary. Everything inside the core stays in wei.
package units

import (
	"errors"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const Decimals = 18

var (
	ErrEmpty  = errors.New("amount is empty")
	ErrFormat = errors.New("invalid ether amount format")
)

// ParseEther parses a decimal ether amount ("0.01", "3", ".5") into wei.
// Exponent notation and amounts finer than one wei are format errors.
func ParseEther(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmpty
	}
	if strings.ContainsAny(s, "eE") {
		return nil, ErrFormat
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, ErrFormat
	}
	wei := d.Shift(Decimals)
	if !wei.IsInteger() {
		return nil, ErrFormat
	}
	return wei.BigInt(), nil
}

// FormatEther renders wei as a decimal ether string without trailing zeros.
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	return decimal.NewFromBigInt(wei, -Decimals).String()
}
