package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// TokenMetaData contains the BTX token ABI fragment: ERC-20 reads, game-credit
// minting and the blacklist administration functions.
var TokenMetaData = &bind.MetaData{
	ABI: `[
{"inputs":[{"name":"account","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"stateMutability":"view","type":"function"},
{"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
{"inputs":[],"name":"totalSupply","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"},{"name":"tag","type":"string"}],"name":"mintGC","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"},{"name":"locked","type":"bool"}],"name":"mint","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"name":"user","type":"address"}],"name":"addBlackList","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"name":"user","type":"address"}],"name":"removeBlackList","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"name":"user","type":"address"}],"name":"getBlackListStatus","outputs":[{"name":"","type":"bool"}],"stateMutability":"view","type":"function"},
{"inputs":[{"name":"user","type":"address"}],"name":"destroyBlackFunds","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"name":"approve","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"}
]`,
}

// Token binds the BTX token
type Token struct {
	*boundContract
}

// NewToken binds the token at address
func NewToken(address common.Address, backend bind.ContractBackend) (*Token, error) {
	c, err := bindContract(TokenMetaData, address, backend)
	if err != nil {
		return nil, err
	}
	return &Token{c}, nil
}

func (t *Token) BalanceOf(opts *bind.CallOpts, account common.Address) (*big.Int, error) {
	out, err := t.call(opts, "balanceOf", account)
	if err != nil {
		return nil, err
	}
	return first[*big.Int](out), nil
}

func (t *Token) Decimals(opts *bind.CallOpts) (uint8, error) {
	out, err := t.call(opts, "decimals")
	if err != nil {
		return 0, err
	}
	return first[uint8](out), nil
}

func (t *Token) Symbol(opts *bind.CallOpts) (string, error) {
	out, err := t.call(opts, "symbol")
	if err != nil {
		return "", err
	}
	return first[string](out), nil
}

func (t *Token) TotalSupply(opts *bind.CallOpts) (*big.Int, error) {
	out, err := t.call(opts, "totalSupply")
	if err != nil {
		return nil, err
	}
	return first[*big.Int](out), nil
}

// GetBlackListStatus reports whether user is blacklisted
func (t *Token) GetBlackListStatus(opts *bind.CallOpts, user common.Address) (bool, error) {
	out, err := t.call(opts, "getBlackListStatus", user)
	if err != nil {
		return false, err
	}
	return first[bool](out), nil
}

// MintGC mints game credits to a player, tagged with the purchase reason
func (t *Token) MintGC(opts *bind.TransactOpts, to common.Address, amount *big.Int, tag string) (*types.Transaction, error) {
	return t.transact(opts, "mintGC", to, amount, tag)
}

// Mint mints tokens, optionally locked
func (t *Token) Mint(opts *bind.TransactOpts, to common.Address, amount *big.Int, locked bool) (*types.Transaction, error) {
	return t.transact(opts, "mint", to, amount, locked)
}

func (t *Token) AddBlackList(opts *bind.TransactOpts, user common.Address) (*types.Transaction, error) {
	return t.transact(opts, "addBlackList", user)
}

func (t *Token) RemoveBlackList(opts *bind.TransactOpts, user common.Address) (*types.Transaction, error) {
	return t.transact(opts, "removeBlackList", user)
}

// DestroyBlackFunds burns the balance of a blacklisted account
func (t *Token) DestroyBlackFunds(opts *bind.TransactOpts, user common.Address) (*types.Transaction, error) {
	return t.transact(opts, "destroyBlackFunds", user)
}

func (t *Token) Approve(opts *bind.TransactOpts, spender common.Address, amount *big.Int) (*types.Transaction, error) {
	return t.transact(opts, "approve", spender, amount)
}

func (t *Token) Transfer(opts *bind.TransactOpts, to common.Address, amount *big.Int) (*types.Transaction, error) {
	return t.transact(opts, "transfer", to, amount)
}
