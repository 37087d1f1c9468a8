package out

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/hara-desu/ForestOnchain/internal/platform/chain"
	"github.com/hara-desu/ForestOnchain/internal/platform/tx"
)

type fakeReader struct {
	values map[string][]any
}

func (f fakeReader) Call(_ context.Context, method string, _ ...any) ([]any, error) {
	values, ok := f.values[method]
	if !ok {
		return nil, errors.New("unexpected " + method)
	}
	return values, nil
}

func (fakeReader) BatchCall(context.Context, []tx.Call) ([]chain.Result, error) {
	return nil, errors.New("batch not expected")
}

type fixedBalance struct {
	wei *big.Int
	err error
}

func (b fixedBalance) Balance(context.Context) (*big.Int, error) { return b.wei, b.err }

func TestGatewayReadsOwnerCostAndBalance(t *testing.T) {
	t.Parallel()
	owner := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	reader := fakeReader{values: map[string][]any{
		"CONTRACT_OWNER": {owner},
		"cost_per_tree":  {big.NewInt(7)},
	}}
	gw := NewContractGateway(reader, fixedBalance{wei: big.NewInt(99)})
	ctx := context.Background()

	got, err := gw.Owner(ctx)
	if err != nil {
		t.Fatalf("owner: %v", err)
	}
	if got != owner.Hex() {
		t.Fatalf("expected owner %s, got %s", owner.Hex(), got)
	}
	cost, err := gw.CostPerTree(ctx)
	if err != nil || cost.Int64() != 7 {
		t.Fatalf("expected cost 7, got %v (%v)", cost, err)
	}
	balance, err := gw.Balance(ctx)
	if err != nil || balance.Int64() != 99 {
		t.Fatalf("expected balance 99, got %v (%v)", balance, err)
	}
}

func TestGatewayRejectsWrongOwnerType(t *testing.T) {
	t.Parallel()
	reader := fakeReader{values: map[string][]any{"CONTRACT_OWNER": {"0xaa"}}}
	if _, err := NewContractGateway(reader, fixedBalance{}).Owner(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestGatewayIsAddress(t *testing.T) {
	t.Parallel()
	gw := NewContractGateway(fakeReader{}, fixedBalance{})
	if !gw.IsAddress("0x00000000000000000000000000000000000000aa") {
		t.Fatalf("expected valid address")
	}
	if gw.IsAddress("0x1234") {
		t.Fatalf("expected short address to be rejected")
	}
}
