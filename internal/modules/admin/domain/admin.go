package domain

import (
	"errors"
	"math/big"
	"strings"

	apperrors "github.com/hara-desu/ForestOnchain/internal/platform/errors"
	"github.com/hara-desu/ForestOnchain/internal/platform/units"
)

// Overview is the contract configuration an owner manages.
type Overview struct {
	Owner       string
	CostPerTree *big.Int
	Balance     *big.Int
}

// Withdrawal is a validated withdraw request.
type Withdrawal struct {
	To     string
	Amount *big.Int
}

// IsOwner compares addresses ignoring case. An empty account never owns.
func IsOwner(account, owner string) bool {
	if account == "" || owner == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(account), strings.TrimSpace(owner))
}

// ParseCost validates a new cost per tree given in ether.
func ParseCost(ether string) (*big.Int, error) {
	wei, err := units.ParseEther(ether)
	switch {
	case errors.Is(err, units.ErrEmpty):
		return nil, apperrors.Invalid("newCost", "New cost must not be empty.")
	case err != nil:
		return nil, apperrors.Invalid("newCost", "Invalid ETH amount format.")
	case wei.Sign() <= 0:
		return nil, apperrors.Invalid("newCost", "New cost per tree must be greater than 0.")
	}
	return wei, nil
}

// ParseWithdrawal validates a withdrawal of an ether amount to a recipient.
// isAddress decides whether the recipient is well formed.
func ParseWithdrawal(to, ether string, isAddress func(string) bool) (Withdrawal, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return Withdrawal{}, apperrors.Invalid("to", "Recipient address is required.")
	}
	if isAddress != nil && !isAddress(to) {
		return Withdrawal{}, apperrors.Invalid("to", "Recipient address is not a valid address.")
	}
	if strings.TrimSpace(ether) == "" {
		return Withdrawal{}, apperrors.Invalid("amount", "Amount is required.")
	}
	wei, err := units.ParseEther(ether)
	if err != nil {
		return Withdrawal{}, apperrors.Invalid("amount", "Invalid ETH amount format.")
	}
	if wei.Sign() <= 0 {
		return Withdrawal{}, apperrors.Invalid("amount", "Amount must be greater than 0.")
	}
	return Withdrawal{To: to, Amount: wei}, nil
}
