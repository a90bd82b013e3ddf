package ethereum

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"github.com/glipgg/btx-ops/pkg/config"
)

// Backend is the subset of the node API used by the toolkit.
// *ethclient.Client and the simulated backend client both satisfy it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ethereum.ChainStateReader
	ChainID(ctx context.Context) (*big.Int, error)
}

// Client signs and submits transactions for a single operator account
type Client struct {
	config     *config.EthereumConfig
	backend    Backend
	closer     func()
	privateKey *ecdsa.PrivateKey
	address    common.Address
	chainID    *big.Int
	logger     *zap.Logger
}

// NewClient dials the configured RPC endpoint and loads the operator key
func NewClient(ctx context.Context, cfg *config.EthereumConfig, logger *zap.Logger) (*Client, error) {
	if cfg.RPCURL == "" {
		return nil, ErrMissingRPCURL
	}

	client, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Ethereum RPC: %w", err)
	}

	c, err := NewClientWithBackend(ctx, cfg, client, logger)
	if err != nil {
		client.Close()
		return nil, err
	}
	c.closer = client.Close

	logger.Info("Connected to Ethereum",
		zap.String("chain_id", c.chainID.String()),
		zap.String("rpc_url", cfg.RPCURL),
		zap.String("operator", c.address.Hex()))

	return c, nil
}

// NewClientWithBackend builds a client on top of an existing backend.
// The chain id is taken from the backend when the configuration leaves it unset,
// and must match it otherwise.
func NewClientWithBackend(ctx context.Context, cfg *config.EthereumConfig, backend Backend, logger *zap.Logger) (*Client, error) {
	if cfg.PrivateKey == "" {
		return nil, ErrMissingPrivateKey
	}
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to load private key: %w", err)
	}

	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}
	if cfg.ChainID != 0 && chainID.Cmp(big.NewInt(cfg.ChainID)) != 0 {
		return nil, fmt.Errorf("%w: configured %d, node reports %s", ErrChainIDMismatch, cfg.ChainID, chainID)
	}

	return &Client{
		config:     cfg,
		backend:    backend,
		privateKey: privateKey,
		address:    crypto.PubkeyToAddress(privateKey.PublicKey),
		chainID:    chainID,
		logger:     logger,
	}, nil
}

// Close closes the underlying RPC connection
func (c *Client) Close() {
	if c.closer != nil {
		c.closer()
	}
}

// Address returns the operator account
func (c *Client) Address() common.Address {
	return c.address
}

// ChainID returns the chain id the client signs for
func (c *Client) ChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

// Backend exposes the node connection for contract bindings
func (c *Client) Backend() Backend {
	return c.backend
}

// GetTransactor returns a transaction signer with the pending nonce and a capped gas price
func (c *Client) GetTransactor(ctx context.Context) (*bind.TransactOpts, error) {
	auth, err := bind.NewKeyedTransactorWithChainID(c.privateKey, c.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	auth.Context = ctx

	nonce, err := c.backend.PendingNonceAt(ctx, c.address)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	auth.Nonce = new(big.Int).SetUint64(nonce)
	auth.GasLimit = c.config.GasLimit

	if c.config.MaxGasPrice != "" {
		maxGasPrice, ok := new(big.Int).SetString(c.config.MaxGasPrice, 10)
		if !ok {
			return nil, fmt.Errorf("invalid max gas price %q", c.config.MaxGasPrice)
		}

		gasPrice, err := c.backend.SuggestGasPrice(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to suggest gas price: %w", err)
		}

		if gasPrice.Cmp(maxGasPrice) > 0 {
			c.logger.Warn("Suggested gas price exceeds maximum",
				zap.String("suggested", gasPrice.String()),
				zap.String("max", maxGasPrice.String()))
			auth.GasPrice = maxGasPrice
		} else {
			auth.GasPrice = gasPrice
		}
	}

	return auth, nil
}

// CallOpts returns read options bound to ctx
func (c *Client) CallOpts(ctx context.Context) *bind.CallOpts {
	return &bind.CallOpts{Context: ctx, From: c.address}
}

// EstimateGas estimates the gas for calling to with data from the operator account
func (c *Client) EstimateGas(ctx context.Context, to common.Address, data []byte) (uint64, error) {
	gas, err := c.backend.EstimateGas(ctx, ethereum.CallMsg{
		From: c.address,
		To:   &to,
		Data: data,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to estimate gas: %w", err)
	}
	return gas, nil
}

func (c *Client) estimateCreate(ctx context.Context, data []byte) (uint64, error) {
	gas, err := c.backend.EstimateGas(ctx, ethereum.CallMsg{From: c.address, Data: data})
	if err != nil {
		return 0, fmt.Errorf("failed to estimate deployment gas: %w", err)
	}
	return gas, nil
}

// WaitMined blocks until tx is included, the receipt timeout elapses or ctx is cancelled.
// A receipt with failed status is returned together with ErrTransactionReverted.
func (c *Client) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	return c.WaitMinedHash(ctx, tx.Hash())
}

// WaitMinedHash is WaitMined for a transaction known only by hash
func (c *Client) WaitMinedHash(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	if c.config.ReceiptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.ReceiptTimeout)
		defer cancel()
	}

	interval := c.config.PollInterval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		receipt, err := c.Receipt(ctx, hash)
		if err == nil {
			if receipt.Status != types.ReceiptStatusSuccessful {
				return receipt, fmt.Errorf("%w: %s", ErrTransactionReverted, hash.Hex())
			}
			return receipt, nil
		}
		// node errors such as "transaction indexing is in progress" are retried like a missing receipt
		if errors.Is(err, ErrReceiptNotFound) {
			c.logger.Debug("Waiting for receipt", zap.String("tx_hash", hash.Hex()))
		} else {
			c.logger.Warn("Receipt lookup failed, retrying", zap.String("tx_hash", hash.Hex()), zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("failed waiting for %s (last error: %v): %w", hash.Hex(), err, ctx.Err())
		case <-ticker.C:
		}
	}
}

// Receipt returns the receipt of hash or ErrReceiptNotFound when it is not mined yet
func (c *Client) Receipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	receipt, err := c.backend.TransactionReceipt(ctx, hash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, ErrReceiptNotFound
		}
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}
	return receipt, nil
}

// CancelTransaction replaces the pending transaction at nonce with an empty
// zero value transfer to the zero address. A nil gasPrice uses the suggested
// price plus 25%.
func (c *Client) CancelTransaction(ctx context.Context, nonce uint64, gasPrice *big.Int) (*types.Transaction, error) {
	if gasPrice == nil {
		suggested, err := c.backend.SuggestGasPrice(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to suggest gas price: %w", err)
		}
		gasPrice = new(big.Int).Div(new(big.Int).Mul(suggested, big.NewInt(125)), big.NewInt(100))
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &common.Address{},
		Value:    big.NewInt(0),
		Gas:      CancelGasLimit,
		GasPrice: gasPrice,
		Data:     nil,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), c.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign cancel transaction: %w", err)
	}
	if err := c.backend.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("failed to send cancel transaction: %w", err)
	}

	c.logger.Info("Cancel transaction sent",
		zap.Uint64("nonce", nonce),
		zap.String("gas_price", gasPrice.String()),
		zap.String("tx_hash", signed.Hash().Hex()))

	return signed, nil
}

// HasCode reports whether a contract is deployed at addr
func (c *Client) HasCode(ctx context.Context, addr common.Address) (bool, error) {
	code, err := c.backend.CodeAt(ctx, addr, nil)
	if err != nil {
		return false, fmt.Errorf("failed to get code at %s: %w", addr.Hex(), err)
	}
	return len(code) > 0, nil
}

// GetLatestBlockNumber gets the latest block number
func (c *Client) GetLatestBlockNumber(ctx context.Context) (uint64, error) {
	header, err := c.backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block: %w", err)
	}
	return header.Number.Uint64(), nil
}
