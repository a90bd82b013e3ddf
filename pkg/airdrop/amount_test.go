package airdrop

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

func TestValidAddress(t *testing.T) {
	lower := "0xbb16ccfbedf10848b26add3d1d534724c3107e9d"
	checksummed := common.HexToAddress(lower).Hex()
	badChecksum := "0x" + flipFirstLetterCase(checksummed[2:])

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"lowercase", lower, true},
		{"valid checksum", checksummed, true},
		{"bad checksum", badChecksum, false},
		{"uppercase body", "0xBB16CCFBEDF10848B26ADD3D1D534724C3107E9D", true},
		{"missing prefix", "bb16ccfbedf10848b26add3d1d534724c3107e9d", false},
		{"too short", "0xbb16cc", false},
		{"not hex", "0xzz16ccfbedf10848b26add3d1d534724c3107e9d", false},
		{"zero address", "0x0000000000000000000000000000000000000000", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidAddress(tt.input); got != tt.want {
				t.Fatalf("ValidAddress(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func flipFirstLetterCase(s string) string {
	b := []byte(s)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'f':
			b[i] = c - 'a' + 'A'
			return string(b)
		case c >= 'A' && c <= 'F':
			b[i] = c - 'A' + 'a'
			return string(b)
		}
	}
	return s
}

func TestToBaseUnits(t *testing.T) {
	tests := []struct {
		balance  string
		decimals int32
		truncate bool
		want     string
	}{
		{"1000", 18, false, "1000000000000000000000"},
		{"30", 18, false, "30000000000000000000"},
		{"1.5", 6, false, "1500000"},
		{"0.0000001", 6, false, "0"},
		{"1.1234567", 6, false, "1123456"},
		{"42.99", 18, true, "42000000000000000000"},
		{"1e3", 0, false, "1000"},
	}

	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.balance)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.balance, err)
		}
		got, err := ToBaseUnits(d, tt.decimals, tt.truncate)
		if err != nil {
			t.Fatalf("ToBaseUnits(%s) failed: %v", tt.balance, err)
		}
		if got.String() != tt.want {
			t.Fatalf("ToBaseUnits(%s, %d, %v) = %s, want %s", tt.balance, tt.decimals, tt.truncate, got, tt.want)
		}
	}
}

func TestToBaseUnits_Negative(t *testing.T) {
	_, err := ToBaseUnits(decimal.NewFromInt(-1), 18, false)
	if !errors.Is(err, ErrNonNumericBalance) {
		t.Fatalf("expected ErrNonNumericBalance, got %v", err)
	}
}

func TestFormatUnits(t *testing.T) {
	amount, _ := new(big.Int).SetString("830000000000000000000", 10)
	if got := FormatUnits(amount, 18); got != "830" {
		t.Fatalf("FormatUnits() = %s, want 830", got)
	}
	if got := FormatUnits(big.NewInt(1500000), 6); got != "1.5" {
		t.Fatalf("FormatUnits() = %s, want 1.5", got)
	}
	if got := FormatUnits(nil, 6); got != "0" {
		t.Fatalf("FormatUnits(nil) = %s, want 0", got)
	}
}

func TestParseUnits(t *testing.T) {
	got, err := ParseUnits("30", 18)
	if err != nil {
		t.Fatalf("ParseUnits() failed: %v", err)
	}
	if got.String() != "30000000000000000000" {
		t.Fatalf("ParseUnits() = %s", got)
	}
	if _, err := ParseUnits("thirty", 18); !errors.Is(err, ErrNonNumericBalance) {
		t.Fatalf("expected ErrNonNumericBalance, got %v", err)
	}
}
