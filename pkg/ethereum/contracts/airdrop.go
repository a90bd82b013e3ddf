package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// AirdropMetaData contains the distributor ABI fragment
var AirdropMetaData = &bind.MetaData{
	ABI: `[{"inputs":[{"internalType":"address[]","name":"users","type":"address[]"},{"internalType":"uint256[]","name":"amounts","type":"uint256[]"}],"name":"airdrop","outputs":[],"stateMutability":"nonpayable","type":"function"}]`,
}

// Airdrop binds the batch distributor
type Airdrop struct {
	*boundContract
}

// NewAirdrop binds the distributor at address
func NewAirdrop(address common.Address, backend bind.ContractBackend) (*Airdrop, error) {
	c, err := bindContract(AirdropMetaData, address, backend)
	if err != nil {
		return nil, err
	}
	return &Airdrop{c}, nil
}

// PackAirdrop encodes airdrop(address[],uint256[])
func (a *Airdrop) PackAirdrop(users []common.Address, amounts []*big.Int) ([]byte, error) {
	return a.Pack("airdrop", users, amounts)
}

// Airdrop sends amounts[i] to users[i]
func (a *Airdrop) Airdrop(opts *bind.TransactOpts, users []common.Address, amounts []*big.Int) (*types.Transaction, error) {
	return a.transact(opts, "airdrop", users, amounts)
}
