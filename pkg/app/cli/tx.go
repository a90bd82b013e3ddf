package cli

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glipgg/btx-ops/internal/metrics"
	"github.com/glipgg/btx-ops/pkg/ethereum"
)

func newTxCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Operate on raw operator transactions",
	}
	cmd.AddCommand(newTxCancelCommand(rt))
	return cmd
}

func newTxCancelCommand(rt *runtime) *cobra.Command {
	var (
		nonce    uint64
		gasPrice string
	)

	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Replace a stuck transaction with an empty transfer at the same nonce",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			var price *big.Int
			if gasPrice != "" {
				var err error
				if price, err = parseWei(gasPrice); err != nil {
					return err
				}
			}

			client, err := rt.client(ctx)
			if err != nil {
				return err
			}

			if rt.estimate() {
				fmt.Fprintf(out, "cancel estimated gas: %d\n", ethereum.CancelGasLimit)
				return nil
			}

			tx, err := client.CancelTransaction(ctx, nonce, price)
			if err != nil {
				metrics.TransactionsSent.WithLabelValues("cancel", "failed").Inc()
				return err
			}
			metrics.TransactionsSent.WithLabelValues("cancel", "sent").Inc()
			rt.logger.Info("Cancellation sent",
				zap.Uint64("nonce", nonce),
				zap.String("gas_price", tx.GasPrice().String()),
				zap.String("tx_hash", tx.Hash().Hex()))
			fmt.Fprintf(out, "cancel tx: %s (nonce %d, gas price %s)\n", tx.Hash().Hex(), nonce, tx.GasPrice())

			receipt, err := client.WaitMined(ctx, tx)
			if err != nil {
				return err
			}
			metrics.TransactionsSent.WithLabelValues("cancel", "confirmed").Inc()
			fmt.Fprintf(out, "cancel mined in block %d\n", receipt.BlockNumber.Uint64())
			return nil
		},
	}

	cmd.Flags().Uint64Var(&nonce, "nonce", 0, "nonce of the transaction to replace")
	cmd.Flags().StringVar(&gasPrice, "gas-price", "", "gas price in wei; defaults to the suggested price plus 25%")
	_ = cmd.MarkFlagRequired("nonce")
	return cmd
}
