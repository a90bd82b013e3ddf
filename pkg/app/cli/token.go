package cli

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/spf13/cobra"

	"github.com/glipgg/btx-ops/pkg/airdrop"
	"github.com/glipgg/btx-ops/pkg/ethereum"
	"github.com/glipgg/btx-ops/pkg/ethereum/contracts"
)

const defaultMintTag = "play-purchase"

func newTokenCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Administer the BTX token",
	}
	cmd.AddCommand(
		newTokenMintCommand(rt),
		newTokenBlacklistCommand(rt),
		newTokenDestroyBlackFundsCommand(rt),
		newTokenBalanceCommand(rt),
	)
	return cmd
}

// tokenSession binds the configured token for one command
type tokenSession struct {
	client *ethereum.Client
	token  *contracts.Token
}

func (rt *runtime) token(cmd *cobra.Command) (*tokenSession, error) {
	addr, err := contractAddress("token", rt.cfg.Contracts.Token)
	if err != nil {
		return nil, err
	}
	client, err := rt.client(cmd.Context())
	if err != nil {
		return nil, err
	}
	token, err := contracts.NewToken(addr, client.Backend())
	if err != nil {
		return nil, err
	}
	return &tokenSession{client: client, token: token}, nil
}

func (s *tokenSession) decimals(cmd *cobra.Command) (int32, error) {
	d, err := s.token.Decimals(s.client.CallOpts(cmd.Context()))
	if err != nil {
		return 0, fmt.Errorf("failed to read token decimals: %w", err)
	}
	return int32(d), nil
}

func newTokenMintCommand(rt *runtime) *cobra.Command {
	var (
		tag    string
		plain  bool
		locked bool
	)

	cmd := &cobra.Command{
		Use:   "mint <to> <amount>",
		Short: "Mint tokens; amount is in whole tokens and may carry decimals",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := parseAddress(args[0])
			if err != nil {
				return err
			}

			s, err := rt.token(cmd)
			if err != nil {
				return err
			}
			decimals, err := s.decimals(cmd)
			if err != nil {
				return err
			}
			amount, err := airdrop.ParseUnits(args[1], decimals)
			if err != nil {
				return err
			}
			if amount.Sign() == 0 {
				return fmt.Errorf("mint amount must be positive")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "minting %s tokens (%s base units) to %s\n",
				airdrop.FormatUnits(amount, decimals), amount, to.Hex())

			call := txCall{
				method: "mintGC",
				to:     s.token.Address(),
				pack:   func() ([]byte, error) { return s.token.Pack("mintGC", to, amount, tag) },
				send: func(opts *bind.TransactOpts) (*types.Transaction, error) {
					return s.token.MintGC(opts, to, amount, tag)
				},
			}
			if plain {
				call = txCall{
					method: "mint",
					to:     s.token.Address(),
					pack:   func() ([]byte, error) { return s.token.Pack("mint", to, amount, locked) },
					send: func(opts *bind.TransactOpts) (*types.Transaction, error) {
						return s.token.Mint(opts, to, amount, locked)
					},
				}
			}
			_, err = rt.execute(cmd, s.client, call)
			return err
		},
	}

	cmd.Flags().StringVar(&tag, "tag", defaultMintTag, "purpose tag passed to mintGC")
	cmd.Flags().BoolVar(&plain, "plain", false, "call mint(address,uint256,bool) instead of mintGC")
	cmd.Flags().BoolVar(&locked, "locked", false, "lock the minted amount (only with --plain)")
	return cmd
}

func newTokenBlacklistCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blacklist",
		Short: "Manage the token blacklist",
	}

	status := &cobra.Command{
		Use:   "status <address>",
		Short: "Show whether an address is blacklisted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			s, err := rt.token(cmd)
			if err != nil {
				return err
			}
			listed, err := s.token.GetBlackListStatus(s.client.CallOpts(cmd.Context()), user)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s blacklisted: %t\n", user.Hex(), listed)
			return nil
		},
	}

	cmd.AddCommand(
		blacklistChange(rt, "add", "addBlackList", true),
		blacklistChange(rt, "remove", "removeBlackList", false),
		status,
	)
	return cmd
}

// blacklistChange builds add/remove; the call is skipped when the address is already in the wanted state
func blacklistChange(rt *runtime, use, method string, want bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <address>",
		Short: "Call " + method,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			s, err := rt.token(cmd)
			if err != nil {
				return err
			}
			listed, err := s.token.GetBlackListStatus(s.client.CallOpts(cmd.Context()), user)
			if err != nil {
				return err
			}
			if listed == want {
				fmt.Fprintf(cmd.OutOrStdout(), "%s blacklisted: %t, nothing to do\n", user.Hex(), listed)
				return nil
			}

			_, err = rt.execute(cmd, s.client, txCall{
				method: method,
				to:     s.token.Address(),
				pack:   func() ([]byte, error) { return s.token.Pack(method, user) },
				send: func(opts *bind.TransactOpts) (*types.Transaction, error) {
					if want {
						return s.token.AddBlackList(opts, user)
					}
					return s.token.RemoveBlackList(opts, user)
				},
			})
			return err
		},
	}
}

func newTokenDestroyBlackFundsCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "destroy-black-funds <address>",
		Short: "Burn the balance of a blacklisted address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			s, err := rt.token(cmd)
			if err != nil {
				return err
			}
			opts := s.client.CallOpts(cmd.Context())
			listed, err := s.token.GetBlackListStatus(opts, user)
			if err != nil {
				return err
			}
			if !listed {
				return fmt.Errorf("%s is not blacklisted", user.Hex())
			}
			balance, err := s.token.BalanceOf(opts, user)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "destroying %s base units held by %s\n", balance, user.Hex())

			_, err = rt.execute(cmd, s.client, txCall{
				method: "destroyBlackFunds",
				to:     s.token.Address(),
				pack:   func() ([]byte, error) { return s.token.Pack("destroyBlackFunds", user) },
				send: func(opts *bind.TransactOpts) (*types.Transaction, error) {
					return s.token.DestroyBlackFunds(opts, user)
				},
			})
			return err
		},
	}
}

func newTokenBalanceCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "balance [address]",
		Short: "Show a token balance (defaults to the operator account)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rt.token(cmd)
			if err != nil {
				return err
			}
			account := s.client.Address()
			if len(args) == 1 {
				if account, err = parseAddress(args[0]); err != nil {
					return err
				}
			}
			opts := s.client.CallOpts(cmd.Context())
			balance, err := s.token.BalanceOf(opts, account)
			if err != nil {
				return err
			}
			decimals, err := s.decimals(cmd)
			if err != nil {
				return err
			}
			symbol, err := s.token.Symbol(opts)
			if err != nil {
				return err
			}
			printBalance(cmd, account, balance, decimals, symbol)
			return nil
		},
	}
}

func printBalance(cmd *cobra.Command, account common.Address, balance *big.Int, decimals int32, symbol string) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %s\n", account.Hex(), airdrop.FormatUnits(balance, decimals), symbol)
}
