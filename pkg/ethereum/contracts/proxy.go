package contracts

import (
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ProxyAdminMetaData contains the OpenZeppelin ProxyAdmin fragment.
// upgradeAndCall with empty data performs a plain upgrade on v5 admins.
var ProxyAdminMetaData = &bind.MetaData{
	ABI: `[
{"inputs":[],"name":"owner","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
{"inputs":[{"name":"proxy","type":"address"},{"name":"implementation","type":"address"},{"name":"data","type":"bytes"}],"name":"upgradeAndCall","outputs":[],"stateMutability":"payable","type":"function"}
]`,
}

// UUPSMetaData contains the UUPSUpgradeable fragment, called through the proxy
var UUPSMetaData = &bind.MetaData{
	ABI: `[
{"inputs":[],"name":"proxiableUUID","outputs":[{"name":"","type":"bytes32"}],"stateMutability":"view","type":"function"},
{"inputs":[{"name":"newImplementation","type":"address"},{"name":"data","type":"bytes"}],"name":"upgradeToAndCall","outputs":[],"stateMutability":"payable","type":"function"}
]`,
}

// ProxyAdmin binds the admin contract of a transparent proxy
type ProxyAdmin struct {
	*boundContract
}

func NewProxyAdmin(address common.Address, backend bind.ContractBackend) (*ProxyAdmin, error) {
	c, err := bindContract(ProxyAdminMetaData, address, backend)
	if err != nil {
		return nil, err
	}
	return &ProxyAdmin{c}, nil
}

func (p *ProxyAdmin) Owner(opts *bind.CallOpts) (common.Address, error) {
	out, err := p.call(opts, "owner")
	if err != nil {
		return common.Address{}, err
	}
	return first[common.Address](out), nil
}

// UpgradeAndCall points proxy at implementation and optionally calls it with data
func (p *ProxyAdmin) UpgradeAndCall(opts *bind.TransactOpts, proxy, implementation common.Address, data []byte) (*types.Transaction, error) {
	if data == nil {
		data = []byte{}
	}
	return p.transact(opts, "upgradeAndCall", proxy, implementation, data)
}

// UUPS binds a UUPS upgradeable implementation through its proxy
type UUPS struct {
	*boundContract
}

func NewUUPS(address common.Address, backend bind.ContractBackend) (*UUPS, error) {
	c, err := bindContract(UUPSMetaData, address, backend)
	if err != nil {
		return nil, err
	}
	return &UUPS{c}, nil
}

// ProxiableUUID must return the ERC-1967 implementation slot on a valid UUPS implementation
func (u *UUPS) ProxiableUUID(opts *bind.CallOpts) ([32]byte, error) {
	out, err := u.call(opts, "proxiableUUID")
	if err != nil {
		return [32]byte{}, err
	}
	return first[[32]byte](out), nil
}

func (u *UUPS) UpgradeToAndCall(opts *bind.TransactOpts, implementation common.Address, data []byte) (*types.Transaction, error) {
	if data == nil {
		data = []byte{}
	}
	return u.transact(opts, "upgradeToAndCall", implementation, data)
}
