// Package chain is the boundary to the ForestOnchain contract: read calls
// (single and batched), transaction submission from an account unlocked at
// the node, receipt polling and revert decoding.
package chain

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/hashicorp/go-hclog"

	"github.com/hara-desu/ForestOnchain/internal/platform/clock"
	apperrors "github.com/hara-desu/ForestOnchain/internal/platform/errors"
	"github.com/hara-desu/ForestOnchain/internal/platform/tx"
)

//go:embed forest_abi.json
var forestABI []byte

// ContractABI parses the embedded contract interface.
func ContractABI() (abi.ABI, error) {
	return abi.JSON(bytes.NewReader(forestABI))
}

type Options struct {
	Contract       string
	Account        string
	PollInterval   time.Duration
	ConfirmTimeout time.Duration
	Clock          clock.Clock
	Logger         hclog.Logger
}

type Client struct {
	rpc      *rpc.Client
	eth      *ethclient.Client
	abi      abi.ABI
	contract common.Address
	from     common.Address
	hasFrom  bool

	poll    time.Duration
	timeout time.Duration
	clock   clock.Clock
	logger  hclog.Logger
}

// Reader is the read side of the contract used by module gateways.
type Reader interface {
	Call(ctx context.Context, method string, args ...any) ([]any, error)
	BatchCall(ctx context.Context, calls []tx.Call) ([]Result, error)
}

// Result is one element of a batched read.
type Result struct {
	Values []any
	Err    error
}

func Dial(ctx context.Context, url string, opts Options) (*Client, error) {
	rc, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return NewClient(rc, opts)
}

func NewClient(rc *rpc.Client, opts Options) (*Client, error) {
	parsed, err := ContractABI()
	if err != nil {
		return nil, fmt.Errorf("parse contract abi: %w", err)
	}
	if !common.IsHexAddress(opts.Contract) {
		return nil, fmt.Errorf("contract address %q: %w", opts.Contract, apperrors.ErrInvalidInput)
	}
	c := &Client{
		rpc:      rc,
		eth:      ethclient.NewClient(rc),
		abi:      parsed,
		contract: common.HexToAddress(opts.Contract),
		poll:     opts.PollInterval,
		timeout:  opts.ConfirmTimeout,
		clock:    opts.Clock,
		logger:   opts.Logger,
	}
	if opts.Account != "" {
		if !common.IsHexAddress(opts.Account) {
			return nil, fmt.Errorf("account %q: %w", opts.Account, apperrors.ErrInvalidInput)
		}
		c.from = common.HexToAddress(opts.Account)
		c.hasFrom = true
	}
	if c.poll <= 0 {
		c.poll = 2 * time.Second
	}
	if c.timeout <= 0 {
		c.timeout = 2 * time.Minute
	}
	if c.clock == nil {
		c.clock = clock.SystemClock{}
	}
	if c.logger == nil {
		c.logger = hclog.NewNullLogger()
	}
	c.logger = c.logger.Named("chain")
	return c, nil
}

func (c *Client) Close() {
	c.rpc.Close()
}

// Account is the configured sender, empty when none.
func (c *Client) Account() string {
	if !c.hasFrom {
		return ""
	}
	return c.from.Hex()
}

func (c *Client) Contract() string {
	return c.contract.Hex()
}

// Call performs one eth_call against the latest block.
func (c *Client) Call(ctx context.Context, method string, args ...any) ([]any, error) {
	data, err := c.pack(method, args)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	var out hexutil.Bytes
	if err := c.rpc.CallContext(ctx, &out, "eth_call", c.callArgs(data), "latest"); err != nil {
		return nil, c.remoteError(method, err)
	}
	values, err := c.abi.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return values, nil
}

// BatchCall sends every call in one JSON-RPC batch. The returned error is a
// transport failure of the whole batch; per-call failures are reported in
// the matching Result.
func (c *Client) BatchCall(ctx context.Context, calls []tx.Call) ([]Result, error) {
	if len(calls) == 0 {
		return nil, nil
	}
	results := make([]Result, len(calls))
	elems := make([]rpc.BatchElem, 0, len(calls))
	index := make([]int, 0, len(calls))
	outs := make([]hexutil.Bytes, len(calls))
	for i, call := range calls {
		data, err := c.pack(call.Method, call.Args)
		if err != nil {
			results[i].Err = fmt.Errorf("pack %s: %w", call.Method, err)
			continue
		}
		elems = append(elems, rpc.BatchElem{
			Method: "eth_call",
			Args:   []any{c.callArgs(data), "latest"},
			Result: &outs[i],
		})
		index = append(index, i)
	}
	if err := c.rpc.BatchCallContext(ctx, elems); err != nil {
		return nil, fmt.Errorf("batch eth_call: %w", err)
	}
	for n, elem := range elems {
		i := index[n]
		method := calls[i].Method
		if elem.Error != nil {
			results[i].Err = c.remoteError(method, elem.Error)
			continue
		}
		values, err := c.abi.Unpack(method, outs[i])
		if err != nil {
			results[i].Err = fmt.Errorf("unpack %s: %w", method, err)
			continue
		}
		results[i].Values = values
	}
	return results, nil
}

// Submit sends the request with eth_sendTransaction and returns the
// transaction hash.
func (c *Client) Submit(ctx context.Context, req tx.Request) (string, error) {
	if !c.hasFrom {
		return "", apperrors.ErrNoAccount
	}
	data, err := c.pack(req.Call.Method, req.Call.Args)
	if err != nil {
		return "", fmt.Errorf("pack %s: %w", req.Call.Method, err)
	}
	args := map[string]any{
		"from": c.from,
		"to":   c.contract,
		"data": hexutil.Bytes(data),
	}
	if req.Value != nil && req.Value.Sign() > 0 {
		args["value"] = (*hexutil.Big)(req.Value)
	}
	var hash common.Hash
	if err := c.rpc.CallContext(ctx, &hash, "eth_sendTransaction", args); err != nil {
		return "", c.remoteError(req.Call.Method, err)
	}
	c.logger.Debug("transaction sent", "method", req.Call.Method, "hash", hash.Hex())
	return hash.Hex(), nil
}

// WaitConfirmed polls for the receipt until it is included, reverted or the
// confirm timeout passes.
func (c *Client) WaitConfirmed(ctx context.Context, hash string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	ticker := c.clock.NewTicker(c.poll)
	defer ticker.Stop()
	txHash := common.HexToHash(hash)
	for {
		receipt, err := c.eth.TransactionReceipt(ctx, txHash)
		switch {
		case err == nil:
			if receipt.Status != types.ReceiptStatusSuccessful {
				return &apperrors.RemoteError{
					ShortMessage: "Transaction reverted.",
					Message:      fmt.Sprintf("transaction %s reverted in block %s", hash, receipt.BlockNumber),
				}
			}
			c.logger.Debug("transaction confirmed", "hash", hash, "block", receipt.BlockNumber)
			return nil
		case errors.Is(err, ethereum.NotFound):
		case ctx.Err() != nil:
		default:
			return c.remoteError("eth_getTransactionReceipt", err)
		}
		select {
		case <-ctx.Done():
			return &apperrors.RemoteError{
				ShortMessage: "Transaction was not confirmed in time.",
				Message:      fmt.Sprintf("transaction %s not confirmed within %s", hash, c.timeout),
				Cause:        ctx.Err(),
			}
		case <-ticker.C():
		}
	}
}

// Balance returns the contract's balance in wei.
func (c *Client) Balance(ctx context.Context) (*big.Int, error) {
	balance, err := c.eth.BalanceAt(ctx, c.contract, nil)
	if err != nil {
		return nil, fmt.Errorf("contract balance: %w", err)
	}
	return balance, nil
}

// pack encodes a call. Hex strings passed for address parameters are
// converted, so callers outside this package never handle go-ethereum types.
func (c *Client) pack(method string, args []any) ([]byte, error) {
	m, ok := c.abi.Methods[method]
	if !ok {
		return nil, fmt.Errorf("method %q not found in contract abi", method)
	}
	if len(args) == len(m.Inputs) {
		converted := make([]any, len(args))
		for i, arg := range args {
			converted[i] = arg
			if s, isString := arg.(string); isString && m.Inputs[i].Type.T == abi.AddressTy {
				if !common.IsHexAddress(s) {
					return nil, fmt.Errorf("%s argument %q: %w", method, s, apperrors.ErrInvalidInput)
				}
				converted[i] = common.HexToAddress(s)
			}
		}
		args = converted
	}
	return c.abi.Pack(method, args...)
}

func (c *Client) callArgs(data []byte) map[string]any {
	args := map[string]any{
		"to":   c.contract,
		"data": hexutil.Bytes(data),
	}
	if c.hasFrom {
		args["from"] = c.from
	}
	return args
}

// remoteError converts a node error into a RemoteError, decoding revert data
// into the contract error name when possible.
func (c *Client) remoteError(method string, err error) error {
	remote := &apperrors.RemoteError{
		ShortMessage: fmt.Sprintf("The contract function %q reverted.", method),
		Message:      err.Error(),
		Cause:        err,
	}
	var dataErr rpc.DataError
	if !errors.As(err, &dataErr) {
		var rpcErr rpc.Error
		if !errors.As(err, &rpcErr) {
			remote.ShortMessage = ""
		}
		return remote
	}
	remote.Details = c.DecodeRevert(dataErr.ErrorData())
	if remote.Details == "" {
		remote.Details = err.Error()
	}
	return remote
}

// DecodeRevert names the contract error encoded in revert data. It returns
// the revert reason for Error(string) payloads and "" for anything unknown.
func (c *Client) DecodeRevert(data any) string {
	raw, ok := revertBytes(data)
	if !ok || len(raw) < 4 {
		return ""
	}
	for name, def := range c.abi.Errors {
		if bytes.Equal(def.ID[:4], raw[:4]) {
			return name + "()"
		}
	}
	if reason, err := abi.UnpackRevert(raw); err == nil {
		return reason
	}
	return ""
}

func revertBytes(data any) ([]byte, bool) {
	switch v := data.(type) {
	case string:
		raw, err := hex.DecodeString(strings.TrimPrefix(v, "0x"))
		return raw, err == nil
	case []byte:
		return v, true
	case hexutil.Bytes:
		return v, true
	}
	return nil, false
}
