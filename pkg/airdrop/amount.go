package airdrop

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// ValidAddress reports whether s is a 0x-prefixed 20-byte hex address. Mixed-case input must
// carry a valid EIP-55 checksum, and the zero address is rejected.
func ValidAddress(s string) bool {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return false
	}
	if !common.IsHexAddress(s) {
		return false
	}

	addr := common.HexToAddress(s)
	if addr == (common.Address{}) {
		return false
	}

	body := s[2:]
	if body != strings.ToLower(body) && body != strings.ToUpper(body) {
		return addr.Hex() == "0x"+body
	}
	return true
}

// ParseBalance parses a decimal token quantity.
func ParseBalance(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrNonNumericBalance, s)
	}
	return d, nil
}

// ToBaseUnits scales a decimal balance to the token's smallest unit (balance × 10^decimals).
// Digits finer than the token precision are truncated. With truncateWhole the balance is
// cut to whole tokens first.
func ToBaseUnits(balance decimal.Decimal, decimals int32, truncateWhole bool) (*big.Int, error) {
	if balance.IsNegative() {
		return nil, fmt.Errorf("%w: negative balance %s", ErrNonNumericBalance, balance.String())
	}
	if truncateWhole {
		balance = balance.Truncate(0)
	}
	return balance.Shift(decimals).Truncate(0).BigInt(), nil
}

// ParseUnits parses a decimal string straight to base units.
func ParseUnits(s string, decimals int32) (*big.Int, error) {
	d, err := ParseBalance(s)
	if err != nil {
		return nil, err
	}
	return ToBaseUnits(d, decimals, false)
}

// FormatUnits renders base units as a decimal token quantity.
func FormatUnits(amount *big.Int, decimals int32) string {
	if amount == nil {
		return "0"
	}
	return decimal.NewFromBigInt(amount, -decimals).String()
}
