// Package contracts holds minimal bindings for the contracts the toolkit operates.
// Each binding carries only the ABI fragment it calls.
package contracts

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

type boundContract struct {
	address  common.Address
	abi      *abi.ABI
	contract *bind.BoundContract
}

func bindContract(meta *bind.MetaData, address common.Address, backend bind.ContractBackend) (*boundContract, error) {
	parsed, err := meta.GetAbi()
	if err != nil {
		return nil, fmt.Errorf("failed to parse abi: %w", err)
	}
	return &boundContract{
		address:  address,
		abi:      parsed,
		contract: bind.NewBoundContract(address, *parsed, backend, backend, backend),
	}, nil
}

// Address returns the contract address
func (b *boundContract) Address() common.Address {
	return b.address
}

// Pack encodes a call to method
func (b *boundContract) Pack(method string, args ...any) ([]byte, error) {
	data, err := b.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}
	return data, nil
}

func (b *boundContract) call(opts *bind.CallOpts, method string, args ...any) ([]any, error) {
	var out []any
	if err := b.contract.Call(opts, &out, method, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return out, nil
}

func (b *boundContract) transact(opts *bind.TransactOpts, method string, args ...any) (*types.Transaction, error) {
	tx, err := b.contract.Transact(opts, method, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return tx, nil
}

func first[T any](out []any) T {
	return *abi.ConvertType(out[0], new(T)).(*T)
}
