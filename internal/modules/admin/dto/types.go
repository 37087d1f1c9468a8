package dto

import "math/big"

type OverviewInput struct {
	Account string
}

type OverviewOutput struct {
	Account        string
	Owner          string
	IsOwner        bool
	CostPerTreeWei *big.Int
	BalanceWei     *big.Int
}

type ChangeCostInput struct {
	Account string
	// NewCost is in ether.
	NewCost string
}

type WithdrawInput struct {
	Account string
	To      string
	// Amount is in ether.
	Amount string
}

type TxOutput struct {
	AttemptID string
	Method    string
	Hash      string
	ValueWei  *big.Int
}
