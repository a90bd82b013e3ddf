package cli

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glipgg/btx-ops/internal/metrics"
	"github.com/glipgg/btx-ops/pkg/ethereum"
)

// ErrContractNotConfigured is returned when a command needs an address missing from the contracts section
var ErrContractNotConfigured = errors.New("contract address is not configured")

func (rt *runtime) client(ctx context.Context) (*ethereum.Client, error) {
	client, err := ethereum.NewClient(ctx, &rt.cfg.Ethereum, rt.logger)
	if err != nil {
		return nil, err
	}
	rt.onClose(client.Close)
	return client, nil
}

func contractAddress(key, value string) (common.Address, error) {
	if value == "" {
		return common.Address{}, fmt.Errorf("%w: contracts.%s", ErrContractNotConfigured, key)
	}
	return common.HexToAddress(value), nil
}

func parseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}

func parseWei(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("invalid wei amount %q", s)
	}
	return n, nil
}

// txCall is one contract method invocation that can be estimated or sent
type txCall struct {
	method string
	to     common.Address
	pack   func() ([]byte, error)
	send   func(opts *bind.TransactOpts) (*types.Transaction, error)
}

// execute estimates call with --estimate, otherwise sends it and waits for the receipt
func (rt *runtime) execute(cmd *cobra.Command, client *ethereum.Client, call txCall) (*types.Receipt, error) {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if rt.estimate() {
		data, err := call.pack()
		if err != nil {
			return nil, err
		}
		gas, err := client.EstimateGas(ctx, call.to, data)
		if err != nil {
			metrics.ErrorsTotal.WithLabelValues("cli", "estimate").Inc()
			return nil, fmt.Errorf("%s: %w", call.method, err)
		}
		metrics.GasEstimated.WithLabelValues(call.method).Observe(float64(gas))
		fmt.Fprintf(out, "%s estimated gas: %d\n", call.method, gas)
		return nil, nil
	}

	opts, err := client.GetTransactor(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := call.send(opts)
	if err != nil {
		metrics.TransactionsSent.WithLabelValues(call.method, "failed").Inc()
		return nil, err
	}
	metrics.TransactionsSent.WithLabelValues(call.method, "sent").Inc()
	rt.logger.Info("Transaction sent",
		zap.String("method", call.method),
		zap.String("to", call.to.Hex()),
		zap.Uint64("nonce", tx.Nonce()),
		zap.String("tx_hash", tx.Hash().Hex()))
	fmt.Fprintf(out, "%s tx: %s\n", call.method, tx.Hash().Hex())

	receipt, err := client.WaitMined(ctx, tx)
	if err != nil {
		metrics.TransactionsSent.WithLabelValues(call.method, "reverted").Inc()
		return receipt, err
	}
	metrics.TransactionsSent.WithLabelValues(call.method, "confirmed").Inc()
	fmt.Fprintf(out, "%s mined in block %d, gas used %d\n", call.method, receipt.BlockNumber.Uint64(), receipt.GasUsed)
	return receipt, nil
}
