package cli

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glipgg/btx-ops/pkg/airdrop"
	"github.com/glipgg/btx-ops/pkg/ethereum"
	"github.com/glipgg/btx-ops/pkg/ethereum/contracts"
	"github.com/glipgg/btx-ops/pkg/swap"
)

var (
	// ErrSwapPaused is returned when a swap is attempted while the pool is paused
	ErrSwapPaused = errors.New("swap contract is paused")
	// ErrQuoteMismatch is returned when the on-chain quote differs from the local computation
	ErrQuoteMismatch = errors.New("on-chain quote differs from local quote")
)

func newSwapCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap",
		Short: "Inspect, administer and use the BTX/USDC stable swap",
	}
	cmd.AddCommand(
		newSwapQuoteCommand(rt),
		newSwapStatusCommand(rt),
		newSwapPauseCommand(rt, true),
		newSwapPauseCommand(rt, false),
		newSwapSetRateCommand(rt),
		newSwapWithdrawCommand(rt),
		newSwapExecCommand(rt),
	)
	return cmd
}

// swapSession binds the pool and both of its tokens
type swapSession struct {
	client *ethereum.Client
	pool   *contracts.StableSwap
	btx    *contracts.Token
	usdc   *contracts.Token
}

func (rt *runtime) swap(cmd *cobra.Command) (*swapSession, error) {
	c := rt.cfg.Contracts
	poolAddr, err := contractAddress("stable_swap", c.StableSwap)
	if err != nil {
		return nil, err
	}
	btxAddr, err := contractAddress("token", c.Token)
	if err != nil {
		return nil, err
	}
	usdcAddr, err := contractAddress("usdc", c.USDC)
	if err != nil {
		return nil, err
	}

	client, err := rt.client(cmd.Context())
	if err != nil {
		return nil, err
	}
	pool, err := contracts.NewStableSwap(poolAddr, client.Backend())
	if err != nil {
		return nil, err
	}
	btx, err := contracts.NewToken(btxAddr, client.Backend())
	if err != nil {
		return nil, err
	}
	usdc, err := contracts.NewToken(usdcAddr, client.Backend())
	if err != nil {
		return nil, err
	}
	return &swapSession{client: client, pool: pool, btx: btx, usdc: usdc}, nil
}

func (s *swapSession) quoter(cmd *cobra.Command, rt *runtime) (*swap.Quoter, error) {
	rate, err := s.pool.BtxToUsdcRate(s.client.CallOpts(cmd.Context()))
	if err != nil {
		return nil, fmt.Errorf("failed to read exchange rate: %w", err)
	}
	return swap.NewQuoter(rate, rt.cfg.Swap.BTXDecimals, rt.cfg.Swap.USDCDecimals)
}

func (s *swapSession) tokenFor(asset swap.Asset) *contracts.Token {
	if asset == swap.BTX {
		return s.btx
	}
	return s.usdc
}

func (s *swapSession) reserve(cmd *cobra.Command, asset swap.Asset) (*big.Int, error) {
	return s.tokenFor(asset).BalanceOf(s.client.CallOpts(cmd.Context()), s.pool.Address())
}

// onChainQuote asks the pool what it pays out for amount of in
func (s *swapSession) onChainQuote(cmd *cobra.Command, in swap.Asset, amount *big.Int) (*big.Int, error) {
	opts := s.client.CallOpts(cmd.Context())
	if in == swap.BTX {
		return s.pool.GetUsdcAmountForBtx(opts, amount)
	}
	return s.pool.GetBtxAmountForUsdc(opts, amount)
}

func parseAsset(s string) (swap.Asset, error) {
	switch swap.Asset(strings.ToUpper(strings.TrimSpace(s))) {
	case swap.BTX:
		return swap.BTX, nil
	case swap.USDC:
		return swap.USDC, nil
	default:
		return "", fmt.Errorf("unknown asset %q, want btx or usdc", s)
	}
}

func assetDecimals(rt *runtime, asset swap.Asset) int32 {
	if asset == swap.BTX {
		return rt.cfg.Swap.BTXDecimals
	}
	return rt.cfg.Swap.USDCDecimals
}

// quote computes the payout locally and checks it against the pool
func (rt *runtime) quote(cmd *cobra.Command, s *swapSession, in swap.Asset, amount *big.Int) (swap.Asset, *big.Int, error) {
	q, err := s.quoter(cmd, rt)
	if err != nil {
		return "", nil, err
	}
	outAsset, local, err := q.Quote(in, amount)
	if err != nil {
		return "", nil, err
	}
	remote, err := s.onChainQuote(cmd, in, amount)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read on-chain quote: %w", err)
	}
	if remote.Cmp(local) != 0 {
		rt.logger.Warn("Quote mismatch",
			zap.String("asset_in", string(in)),
			zap.String("amount_in", amount.String()),
			zap.String("local", local.String()),
			zap.String("on_chain", remote.String()))
		return "", nil, fmt.Errorf("%w: local %s, on-chain %s", ErrQuoteMismatch, local, remote)
	}
	return outAsset, local, nil
}

func newSwapQuoteCommand(rt *runtime) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "quote <amount>",
		Short: "Quote a swap locally and cross-check it against the pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := parseAsset(from)
			if err != nil {
				return err
			}
			amount, err := airdrop.ParseUnits(args[0], assetDecimals(rt, in))
			if err != nil {
				return err
			}
			s, err := rt.swap(cmd)
			if err != nil {
				return err
			}
			outAsset, out, err := rt.quote(cmd, s, in, amount)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s -> %s %s\n",
				airdrop.FormatUnits(amount, assetDecimals(rt, in)), in,
				airdrop.FormatUnits(out, assetDecimals(rt, outAsset)), outAsset)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "usdc", "asset paid in: btx or usdc")
	return cmd
}

func newSwapStatusCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show rate, pause state and reserves of the pool",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := rt.swap(cmd)
			if err != nil {
				return err
			}
			opts := s.client.CallOpts(cmd.Context())
			rate, err := s.pool.BtxToUsdcRate(opts)
			if err != nil {
				return err
			}
			paused, err := s.pool.Paused(opts)
			if err != nil {
				return err
			}
			btxReserve, err := s.reserve(cmd, swap.BTX)
			if err != nil {
				return err
			}
			usdcReserve, err := s.reserve(cmd, swap.USDC)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "pool:   %s\n", s.pool.Address().Hex())
			fmt.Fprintf(out, "rate:   %s BTX per USDC\n", rate)
			fmt.Fprintf(out, "paused: %t\n", paused)
			fmt.Fprintf(out, "BTX:    %s\n", airdrop.FormatUnits(btxReserve, rt.cfg.Swap.BTXDecimals))
			fmt.Fprintf(out, "USDC:   %s\n", airdrop.FormatUnits(usdcReserve, rt.cfg.Swap.USDCDecimals))
			return nil
		},
	}
}

func newSwapPauseCommand(rt *runtime, pause bool) *cobra.Command {
	use, method := "unpause", "unpause"
	if pause {
		use, method = "pause", "pause"
	}
	return &cobra.Command{
		Use:   use,
		Short: "Call " + method + " on the pool",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := rt.swap(cmd)
			if err != nil {
				return err
			}
			paused, err := s.pool.Paused(s.client.CallOpts(cmd.Context()))
			if err != nil {
				return err
			}
			if paused == pause {
				fmt.Fprintf(cmd.OutOrStdout(), "paused: %t, nothing to do\n", paused)
				return nil
			}
			_, err = rt.execute(cmd, s.client, txCall{
				method: method,
				to:     s.pool.Address(),
				pack:   func() ([]byte, error) { return s.pool.Pack(method) },
				send: func(opts *bind.TransactOpts) (*types.Transaction, error) {
					if pause {
						return s.pool.Pause(opts)
					}
					return s.pool.Unpause(opts)
				},
			})
			return err
		},
	}
}

func newSwapSetRateCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "set-rate <btx-per-usdc>",
		Short: "Update the BTX to USDC exchange rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rate, err := parseWei(args[0])
			if err != nil {
				return err
			}
			if rate.Sign() == 0 {
				return swap.ErrZeroRate
			}
			s, err := rt.swap(cmd)
			if err != nil {
				return err
			}
			_, err = rt.execute(cmd, s.client, txCall{
				method: "updateBTXToUSDCExchangeRate",
				to:     s.pool.Address(),
				pack:   func() ([]byte, error) { return s.pool.Pack("updateBTXToUSDCExchangeRate", rate) },
				send: func(opts *bind.TransactOpts) (*types.Transaction, error) {
					return s.pool.UpdateBTXToUSDCExchangeRate(opts, rate)
				},
			})
			return err
		},
	}
}

func newSwapWithdrawCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw <btx|usdc> <amount> [to]",
		Short: "Withdraw pool liquidity (defaults to the operator account)",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			asset, err := parseAsset(args[0])
			if err != nil {
				return err
			}
			amount, err := airdrop.ParseUnits(args[1], assetDecimals(rt, asset))
			if err != nil {
				return err
			}
			s, err := rt.swap(cmd)
			if err != nil {
				return err
			}
			to := s.client.Address()
			if len(args) == 3 {
				if to, err = parseAddress(args[2]); err != nil {
					return err
				}
			}

			reserve, err := s.reserve(cmd, asset)
			if err != nil {
				return err
			}
			if err := swap.CheckLiquidity(asset, amount, reserve); err != nil {
				return err
			}

			method := "withdrawUSDC"
			if asset == swap.BTX {
				method = "withdrawBTX"
			}
			_, err = rt.execute(cmd, s.client, txCall{
				method: method,
				to:     s.pool.Address(),
				pack:   func() ([]byte, error) { return s.pool.Pack(method, amount, to) },
				send: func(opts *bind.TransactOpts) (*types.Transaction, error) {
					if asset == swap.BTX {
						return s.pool.WithdrawBTX(opts, amount, to)
					}
					return s.pool.WithdrawUSDC(opts, amount, to)
				},
			})
			return err
		},
	}
}

func newSwapExecCommand(rt *runtime) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "exec <amount>",
		Short: "Approve the pool and swap from the operator account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := parseAsset(from)
			if err != nil {
				return err
			}
			amount, err := airdrop.ParseUnits(args[0], assetDecimals(rt, in))
			if err != nil {
				return err
			}
			if amount.Sign() == 0 {
				return fmt.Errorf("swap amount must be positive")
			}

			s, err := rt.swap(cmd)
			if err != nil {
				return err
			}
			paused, err := s.pool.Paused(s.client.CallOpts(cmd.Context()))
			if err != nil {
				return err
			}
			if paused {
				return ErrSwapPaused
			}

			outAsset, out, err := rt.quote(cmd, s, in, amount)
			if err != nil {
				return err
			}
			reserve, err := s.reserve(cmd, outAsset)
			if err != nil {
				return err
			}
			if err := swap.CheckLiquidity(outAsset, out, reserve); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "swapping %s %s for %s %s\n",
				airdrop.FormatUnits(amount, assetDecimals(rt, in)), in,
				airdrop.FormatUnits(out, assetDecimals(rt, outAsset)), outAsset)

			inToken := s.tokenFor(in)
			pool := s.pool.Address()
			if _, err := rt.execute(cmd, s.client, txCall{
				method: "approve",
				to:     inToken.Address(),
				pack:   func() ([]byte, error) { return inToken.Pack("approve", pool, amount) },
				send: func(opts *bind.TransactOpts) (*types.Transaction, error) {
					return inToken.Approve(opts, pool, amount)
				},
			}); err != nil {
				return err
			}
			if rt.estimate() {
				fmt.Fprintln(cmd.OutOrStdout(), "swap is estimated once the approval is mined")
				return nil
			}

			method := "swapUSDCForBTX"
			if in == swap.BTX {
				method = "swapBTXForUSDC"
			}
			_, err = rt.execute(cmd, s.client, txCall{
				method: method,
				to:     pool,
				pack:   func() ([]byte, error) { return s.pool.Pack(method, amount) },
				send: func(opts *bind.TransactOpts) (*types.Transaction, error) {
					if in == swap.BTX {
						return s.pool.SwapBTXForUSDC(opts, amount)
					}
					return s.pool.SwapUSDCForBTX(opts, amount)
				},
			})
			return err
		},
	}
	cmd.Flags().StringVar(&from, "from", "usdc", "asset paid in: btx or usdc")
	return cmd
}

