package cli

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glipgg/btx-ops/pkg/ethereum"
)

// ErrArtifactNotConfigured is returned when a deployment needs an artifact path missing from config
var ErrArtifactNotConfigured = errors.New("artifact path is not configured")

const (
	proxyKindTransparent = "transparent"
	proxyKindUUPS        = "uups"
)

func newDeployCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy contracts from compiled artifacts",
	}
	cmd.AddCommand(newDeployHandlerCommand(rt), newDeployProxyCommand(rt))
	return cmd
}

func newDeployHandlerCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "handler [constructor args...]",
		Short: "Deploy the handler contract",
		Long:  "Deploy the handler contract. Arguments are matched against the artifact constructor, typically the token address followed by the signer address.",
		RunE: func(cmd *cobra.Command, args []string) error {
			art, err := loadArtifact("handler", rt.cfg.Artifacts.Handler)
			if err != nil {
				return err
			}
			params, err := art.ConstructorArgs(args)
			if err != nil {
				return err
			}

			client, err := rt.client(cmd.Context())
			if err != nil {
				return err
			}

			res, err := rt.deploy(cmd, client, art, params...)
			if err != nil || res == nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s deployed at %s\n", art.Name, res.Address.Hex())
			return nil
		},
	}
}

func newDeployProxyCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "proxy [initializer args...]",
		Short: "Deploy the upgradeable handler implementation behind an ERC-1967 proxy",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			acfg := rt.cfg.Artifacts

			impl, err := loadArtifact("proxy_handler", acfg.ProxyHandler)
			if err != nil {
				return err
			}
			proxyArt, err := loadArtifact("proxy", acfg.Proxy)
			if err != nil {
				return err
			}
			initData, err := initializerData(impl, acfg.Initializer, args)
			if err != nil {
				return err
			}

			client, err := rt.client(ctx)
			if err != nil {
				return err
			}

			if rt.estimate() {
				gas, err := client.EstimateDeploy(ctx, impl)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s implementation estimated gas: %d\n", impl.Name, gas)
				fmt.Fprintln(out, "proxy deployment is estimated once the implementation exists")
				return nil
			}

			implRes, err := rt.deploy(cmd, client, impl)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "implementation %s deployed at %s\n", impl.Name, implRes.Address.Hex())

			params := []any{implRes.Address, initData}
			if acfg.ProxyKind == proxyKindTransparent {
				params = []any{implRes.Address, client.Address(), initData}
			}
			proxyRes, err := rt.deploy(cmd, client, proxyArt, params...)
			if err != nil {
				return err
			}

			implSlot, err := client.ImplementationAddress(ctx, proxyRes.Address)
			if err != nil {
				return err
			}
			if implSlot != implRes.Address {
				return fmt.Errorf("proxy %s points at %s, expected %s", proxyRes.Address.Hex(), implSlot.Hex(), implRes.Address.Hex())
			}
			fmt.Fprintf(out, "proxy deployed at %s\n", proxyRes.Address.Hex())
			fmt.Fprintf(out, "implementation slot: %s\n", implSlot.Hex())

			if acfg.ProxyKind == proxyKindTransparent {
				admin, err := client.AdminAddress(ctx, proxyRes.Address)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "proxy admin: %s\n", admin.Hex())
			}
			return nil
		},
	}
}

func loadArtifact(key, path string) (*ethereum.Artifact, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: artifacts.%s", ErrArtifactNotConfigured, key)
	}
	return ethereum.LoadArtifact(path)
}

// initializerData encodes the initializer call run through the proxy constructor.
// An empty initializer name yields empty calldata.
func initializerData(impl *ethereum.Artifact, initializer string, args []string) ([]byte, error) {
	if initializer == "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("%w: no initializer configured", ethereum.ErrArgumentCount)
		}
		return []byte{}, nil
	}
	return impl.PackMethod(initializer, args)
}

// deploy estimates or deploys art and prints the outcome. It returns nil, nil in estimate mode.
func (rt *runtime) deploy(cmd *cobra.Command, client *ethereum.Client, art *ethereum.Artifact, params ...any) (*ethereum.DeployResult, error) {
	ctx := cmd.Context()
	if rt.estimate() {
		gas, err := client.EstimateDeploy(ctx, art, params...)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s estimated gas: %d\n", art.Name, gas)
		return nil, nil
	}

	res, err := client.Deploy(ctx, art, params...)
	if err != nil {
		return nil, err
	}
	rt.logger.Info("Deployed",
		zap.String("contract", art.Name),
		zap.String("address", res.Address.Hex()),
		zap.String("tx_hash", res.Tx.Hash().Hex()))
	fmt.Fprintf(cmd.OutOrStdout(), "%s tx: %s (gas used %d)\n", art.Name, res.Tx.Hash().Hex(), res.Receipt.GasUsed)
	return res, nil
}

func requireCode(cmd *cobra.Command, client *ethereum.Client, addr common.Address) error {
	ok, err := client.HasCode(cmd.Context(), addr)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ethereum.ErrNoCode, addr.Hex())
	}
	return nil
}
