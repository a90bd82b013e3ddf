// Package swap mirrors the fixed-rate arithmetic of the BTX/USDC stable swap so
// quotes and liquidity can be checked before a transaction is sent.
package swap

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	ErrZeroRate              = errors.New("exchange rate must be positive")
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")
	ErrNegativeAmount        = errors.New("amount must not be negative")
)

// Asset names one side of the pool
type Asset string

const (
	BTX  Asset = "BTX"
	USDC Asset = "USDC"
)

// Quoter converts between BTX and USDC base units at Rate whole BTX per whole USDC
type Quoter struct {
	Rate         *big.Int
	BTXDecimals  int32
	USDCDecimals int32
}

// NewQuoter returns a quoter for rate
func NewQuoter(rate *big.Int, btxDecimals, usdcDecimals int32) (*Quoter, error) {
	if rate == nil || rate.Sign() <= 0 {
		return nil, ErrZeroRate
	}
	return &Quoter{Rate: new(big.Int).Set(rate), BTXDecimals: btxDecimals, USDCDecimals: usdcDecimals}, nil
}

// BTXForUSDC returns the BTX base units paid out for usdc base units
func (q *Quoter) BTXForUSDC(usdc *big.Int) (*big.Int, error) {
	if err := q.check(usdc); err != nil {
		return nil, err
	}
	num := new(big.Int).Mul(usdc, q.Rate)
	num.Mul(num, pow10(q.BTXDecimals))
	return num.Quo(num, pow10(q.USDCDecimals)), nil
}

// USDCForBTX returns the USDC base units paid out for btx base units, rounded down
func (q *Quoter) USDCForBTX(btx *big.Int) (*big.Int, error) {
	if err := q.check(btx); err != nil {
		return nil, err
	}
	num := new(big.Int).Mul(btx, pow10(q.USDCDecimals))
	den := new(big.Int).Mul(q.Rate, pow10(q.BTXDecimals))
	return num.Quo(num, den), nil
}

// Quote returns what the pool pays out for amountIn of asset in
func (q *Quoter) Quote(in Asset, amountIn *big.Int) (Asset, *big.Int, error) {
	switch in {
	case BTX:
		out, err := q.USDCForBTX(amountIn)
		return USDC, out, err
	case USDC:
		out, err := q.BTXForUSDC(amountIn)
		return BTX, out, err
	default:
		return "", nil, fmt.Errorf("unknown asset %q", in)
	}
}

func (q *Quoter) check(amount *big.Int) error {
	if q.Rate == nil || q.Rate.Sign() <= 0 {
		return ErrZeroRate
	}
	if amount == nil || amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// CheckLiquidity fails when the pool holds less of asset than it must pay out
func CheckLiquidity(asset Asset, payout, reserve *big.Int) error {
	if reserve.Cmp(payout) < 0 {
		return fmt.Errorf("%w: %s in contract holds %s, need %s", ErrInsufficientLiquidity, asset, reserve, payout)
	}
	return nil
}

func pow10(n int32) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
