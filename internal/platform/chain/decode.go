package chain

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Session mirrors the contract's UserSession tuple.
type Session struct {
	ActivityType string
	StartTime    *big.Int
	EndTime      *big.Int
	Active       bool
	Owner        common.Address
}

func single(values []any) (any, error) {
	if len(values) != 1 {
		return nil, fmt.Errorf("expected one return value, got %d", len(values))
	}
	return values[0], nil
}

func BigInt(values []any) (*big.Int, error) {
	v, err := single(values)
	if err != nil {
		return nil, err
	}
	n, ok := v.(*big.Int)
	if !ok {
		return nil, fmt.Errorf("expected uint256, got %T", v)
	}
	return n, nil
}

func Strings(values []any) ([]string, error) {
	v, err := single(values)
	if err != nil {
		return nil, err
	}
	s, ok := v.([]string)
	if !ok {
		return nil, fmt.Errorf("expected string[], got %T", v)
	}
	return s, nil
}

func Bool(values []any) (bool, error) {
	v, err := single(values)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("expected bool, got %T", v)
	}
	return b, nil
}

func Address(values []any) (string, error) {
	v, err := single(values)
	if err != nil {
		return "", err
	}
	a, ok := v.(common.Address)
	if !ok {
		return "", fmt.Errorf("expected address, got %T", v)
	}
	return a.Hex(), nil
}

func UserSession(values []any) (out Session, err error) {
	v, err := single(values)
	if err != nil {
		return Session{}, err
	}
	// ConvertType panics on a shape mismatch.
	defer func() {
		if r := recover(); r != nil {
			out, err = Session{}, fmt.Errorf("decode user session: %v", r)
		}
	}()
	out = *abi.ConvertType(v, new(Session)).(*Session)
	if out.StartTime == nil {
		out.StartTime = new(big.Int)
	}
	if out.EndTime == nil {
		out.EndTime = new(big.Int)
	}
	return out, nil
}

// IsAddress reports whether s is a well-formed hex address.
func IsAddress(s string) bool {
	return common.IsHexAddress(s)
}

// SameAddress compares two addresses ignoring checksum case.
func SameAddress(a, b string) bool {
	if !common.IsHexAddress(a) || !common.IsHexAddress(b) {
		return false
	}
	return common.HexToAddress(a) == common.HexToAddress(b)
}
