package ethereum

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ERC-1967 storage slots
var (
	ImplementationSlot = common.HexToHash("0x360894a13ba1a3210667c828492db98dca3e2076cc3735a920a3ca505d382bbc")
	AdminSlot          = common.HexToHash("0xb53127684a568b3173ae13b9f8a6016e243e63b6e8ee1178d6a717850b5d6103")
)

// ImplementationAddress reads the logic contract behind an ERC-1967 proxy
func (c *Client) ImplementationAddress(ctx context.Context, proxy common.Address) (common.Address, error) {
	return c.slotAddress(ctx, proxy, ImplementationSlot)
}

// AdminAddress reads the admin (ProxyAdmin contract for transparent proxies) of an ERC-1967 proxy
func (c *Client) AdminAddress(ctx context.Context, proxy common.Address) (common.Address, error) {
	return c.slotAddress(ctx, proxy, AdminSlot)
}

func (c *Client) slotAddress(ctx context.Context, proxy common.Address, slot common.Hash) (common.Address, error) {
	raw, err := c.backend.StorageAt(ctx, proxy, slot, nil)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to read slot %s of %s: %w", slot.Hex(), proxy.Hex(), err)
	}
	return common.BytesToAddress(raw), nil
}
