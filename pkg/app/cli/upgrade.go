package cli

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/spf13/cobra"

	"github.com/glipgg/btx-ops/pkg/ethereum/contracts"
)

// ErrUpgradeNotApplied is returned when the implementation slot does not change after an upgrade
var ErrUpgradeNotApplied = errors.New("implementation slot was not updated")

func newUpgradeCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade deployed proxies",
	}
	cmd.AddCommand(newUpgradeProxyCommand(rt))
	return cmd
}

func newUpgradeProxyCommand(rt *runtime) *cobra.Command {
	var (
		proxyFlag string
		implFlag  string
		call      string
	)

	cmd := &cobra.Command{
		Use:   "proxy [call args...]",
		Short: "Deploy a new implementation and point the proxy at it",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if proxyFlag == "" {
				proxyFlag = rt.cfg.Contracts.HandlerProxy
			}
			proxy, err := contractAddress("handler_proxy", proxyFlag)
			if err != nil {
				return err
			}

			impl, err := loadArtifact("proxy_handler", rt.cfg.Artifacts.ProxyHandler)
			if err != nil {
				return err
			}
			var data []byte
			if call != "" {
				if data, err = impl.PackMethod(call, args); err != nil {
					return err
				}
			} else if len(args) > 0 {
				return errors.New("call arguments given without --call")
			}

			client, err := rt.client(ctx)
			if err != nil {
				return err
			}
			if err := requireCode(cmd, client, proxy); err != nil {
				return err
			}

			current, err := client.ImplementationAddress(ctx, proxy)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "current implementation: %s\n", current.Hex())

			var newImpl common.Address
			if implFlag != "" {
				if newImpl, err = parseAddress(implFlag); err != nil {
					return err
				}
			} else {
				res, err := rt.deploy(cmd, client, impl)
				if err != nil || res == nil {
					return err
				}
				newImpl = res.Address
				fmt.Fprintf(out, "new implementation deployed at %s\n", newImpl.Hex())
			}

			var tc txCall
			switch rt.cfg.Artifacts.ProxyKind {
			case proxyKindUUPS:
				uups, err := contracts.NewUUPS(proxy, client.Backend())
				if err != nil {
					return err
				}
				tc = txCall{
					method: "upgradeToAndCall",
					to:     proxy,
					pack:   func() ([]byte, error) { return uups.Pack("upgradeToAndCall", newImpl, data) },
					send: func(opts *bind.TransactOpts) (*types.Transaction, error) {
						return uups.UpgradeToAndCall(opts, newImpl, data)
					},
				}
			default:
				adminAddr, err := client.AdminAddress(ctx, proxy)
				if err != nil {
					return err
				}
				admin, err := contracts.NewProxyAdmin(adminAddr, client.Backend())
				if err != nil {
					return err
				}
				owner, err := admin.Owner(client.CallOpts(ctx))
				if err != nil {
					return fmt.Errorf("failed to read proxy admin owner: %w", err)
				}
				if owner != client.Address() {
					return fmt.Errorf("proxy admin %s is owned by %s, not the operator %s", adminAddr.Hex(), owner.Hex(), client.Address().Hex())
				}
				tc = txCall{
					method: "upgradeAndCall",
					to:     adminAddr,
					pack:   func() ([]byte, error) { return admin.Pack("upgradeAndCall", proxy, newImpl, data) },
					send: func(opts *bind.TransactOpts) (*types.Transaction, error) {
						return admin.UpgradeAndCall(opts, proxy, newImpl, data)
					},
				}
			}

			receipt, err := rt.execute(cmd, client, tc)
			if err != nil || receipt == nil {
				return err
			}

			updated, err := client.ImplementationAddress(ctx, proxy)
			if err != nil {
				return err
			}
			if updated != newImpl {
				return fmt.Errorf("%w: proxy %s still points at %s", ErrUpgradeNotApplied, proxy.Hex(), updated.Hex())
			}
			fmt.Fprintf(out, "proxy %s now points at %s\n", proxy.Hex(), updated.Hex())
			return nil
		},
	}

	cmd.Flags().StringVar(&proxyFlag, "proxy", "", "proxy address (defaults to contracts.handler_proxy)")
	cmd.Flags().StringVar(&implFlag, "implementation", "", "use an already deployed implementation instead of deploying one")
	cmd.Flags().StringVar(&call, "call", "", "method of the new implementation to call during the upgrade")
	return cmd
}
