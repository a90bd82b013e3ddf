package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// StableSwapMetaData contains the BTX/USDC fixed rate swap ABI fragment
var StableSwapMetaData = &bind.MetaData{
	ABI: `[
{"inputs":[],"name":"btxToUsdcRate","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"inputs":[{"name":"usdcAmount","type":"uint256"}],"name":"getBtxAmountForUsdc","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"inputs":[{"name":"btxAmount","type":"uint256"}],"name":"getUsdcAmountForBtx","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"inputs":[],"name":"paused","outputs":[{"name":"","type":"bool"}],"stateMutability":"view","type":"function"},
{"inputs":[{"name":"btxAmount","type":"uint256"}],"name":"swapBTXForUSDC","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"name":"usdcAmount","type":"uint256"}],"name":"swapUSDCForBTX","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"name":"newRate","type":"uint256"}],"name":"updateBTXToUSDCExchangeRate","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"name":"amount","type":"uint256"},{"name":"to","type":"address"}],"name":"withdrawBTX","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"name":"amount","type":"uint256"},{"name":"to","type":"address"}],"name":"withdrawUSDC","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[],"name":"pause","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[],"name":"unpause","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`,
}

// StableSwap binds the BTX/USDC swap pool
type StableSwap struct {
	*boundContract
}

// NewStableSwap binds the swap pool at address
func NewStableSwap(address common.Address, backend bind.ContractBackend) (*StableSwap, error) {
	c, err := bindContract(StableSwapMetaData, address, backend)
	if err != nil {
		return nil, err
	}
	return &StableSwap{c}, nil
}

// BtxToUsdcRate returns how many whole BTX one USDC buys
func (s *StableSwap) BtxToUsdcRate(opts *bind.CallOpts) (*big.Int, error) {
	out, err := s.call(opts, "btxToUsdcRate")
	if err != nil {
		return nil, err
	}
	return first[*big.Int](out), nil
}

func (s *StableSwap) GetBtxAmountForUsdc(opts *bind.CallOpts, usdcAmount *big.Int) (*big.Int, error) {
	out, err := s.call(opts, "getBtxAmountForUsdc", usdcAmount)
	if err != nil {
		return nil, err
	}
	return first[*big.Int](out), nil
}

func (s *StableSwap) GetUsdcAmountForBtx(opts *bind.CallOpts, btxAmount *big.Int) (*big.Int, error) {
	out, err := s.call(opts, "getUsdcAmountForBtx", btxAmount)
	if err != nil {
		return nil, err
	}
	return first[*big.Int](out), nil
}

func (s *StableSwap) Paused(opts *bind.CallOpts) (bool, error) {
	out, err := s.call(opts, "paused")
	if err != nil {
		return false, err
	}
	return first[bool](out), nil
}

func (s *StableSwap) SwapBTXForUSDC(opts *bind.TransactOpts, btxAmount *big.Int) (*types.Transaction, error) {
	return s.transact(opts, "swapBTXForUSDC", btxAmount)
}

func (s *StableSwap) SwapUSDCForBTX(opts *bind.TransactOpts, usdcAmount *big.Int) (*types.Transaction, error) {
	return s.transact(opts, "swapUSDCForBTX", usdcAmount)
}

func (s *StableSwap) UpdateBTXToUSDCExchangeRate(opts *bind.TransactOpts, rate *big.Int) (*types.Transaction, error) {
	return s.transact(opts, "updateBTXToUSDCExchangeRate", rate)
}

func (s *StableSwap) WithdrawBTX(opts *bind.TransactOpts, amount *big.Int, to common.Address) (*types.Transaction, error) {
	return s.transact(opts, "withdrawBTX", amount, to)
}

func (s *StableSwap) WithdrawUSDC(opts *bind.TransactOpts, amount *big.Int, to common.Address) (*types.Transaction, error) {
	return s.transact(opts, "withdrawUSDC", amount, to)
}

func (s *StableSwap) Pause(opts *bind.TransactOpts) (*types.Transaction, error) {
	return s.transact(opts, "pause")
}

func (s *StableSwap) Unpause(opts *bind.TransactOpts) (*types.Transaction, error) {
	return s.transact(opts, "unpause")
}
