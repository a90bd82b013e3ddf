package service

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/glipgg/btx-ops/pkg/ethereum"
	"github.com/glipgg/btx-ops/pkg/ethereum/contracts"
)

//go:generate mockery --name Distributor --output mocks --outpkg mocks --filename mock_distributor.go --with-expecter

// Distributor is the on-chain side of an airdrop: the distributor contract
// reached through the operator account.
type Distributor interface {
	Contract() common.Address
	// ConfirmedNonce is the operator account nonce at the latest block
	ConfirmedNonce(ctx context.Context) (uint64, error)
	EstimateAirdrop(ctx context.Context, users []common.Address, amounts []*big.Int) (uint64, error)
	// SignAirdrop builds and signs the batch transaction without broadcasting it
	SignAirdrop(ctx context.Context, users []common.Address, amounts []*big.Int) (*types.Transaction, error)
	Send(ctx context.Context, tx *types.Transaction) error
	// Receipt returns ethereum.ErrReceiptNotFound while the transaction is unmined
	Receipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
	// WaitMined returns ethereum.ErrTransactionReverted for a failed receipt
	WaitMined(ctx context.Context, hash common.Hash) (*types.Receipt, error)
}

type chainDistributor struct {
	client   *ethereum.Client
	contract *contracts.Airdrop
}

// NewDistributor binds the distributor contract at address through client
func NewDistributor(client *ethereum.Client, address common.Address) (Distributor, error) {
	contract, err := contracts.NewAirdrop(address, client.Backend())
	if err != nil {
		return nil, fmt.Errorf("failed to bind airdrop contract: %w", err)
	}
	return &chainDistributor{client: client, contract: contract}, nil
}

func (d *chainDistributor) Contract() common.Address {
	return d.contract.Address()
}

func (d *chainDistributor) ConfirmedNonce(ctx context.Context) (uint64, error) {
	nonce, err := d.client.Backend().NonceAt(ctx, d.client.Address(), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to get confirmed nonce: %w", err)
	}
	return nonce, nil
}

func (d *chainDistributor) EstimateAirdrop(ctx context.Context, users []common.Address, amounts []*big.Int) (uint64, error) {
	data, err := d.contract.PackAirdrop(users, amounts)
	if err != nil {
		return 0, err
	}
	return d.client.EstimateGas(ctx, d.contract.Address(), data)
}

func (d *chainDistributor) SignAirdrop(ctx context.Context, users []common.Address, amounts []*big.Int) (*types.Transaction, error) {
	opts, err := d.client.GetTransactor(ctx)
	if err != nil {
		return nil, err
	}
	opts.NoSend = true
	return d.contract.Airdrop(opts, users, amounts)
}

func (d *chainDistributor) Send(ctx context.Context, tx *types.Transaction) error {
	if err := d.client.Backend().SendTransaction(ctx, tx); err != nil {
		return fmt.Errorf("failed to send transaction: %w", err)
	}
	return nil
}

func (d *chainDistributor) Receipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	return d.client.Receipt(ctx, hash)
}

func (d *chainDistributor) WaitMined(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	return d.client.WaitMinedHash(ctx, hash)
}
