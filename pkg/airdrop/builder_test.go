package airdrop

import (
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	addrA = "0x1111111111111111111111111111111111111111"
	addrB = "0x2222222222222222222222222222222222222222"
	addrC = "0x3333333333333333333333333333333333333333"
)

func eth(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
}

func testAddress(i int) string {
	return fmt.Sprintf("0x%040x", i+1)
}

func TestBuild_EndToEndScenario(t *testing.T) {
	holders := []Holder{
		{Address: addrA, Balance: "1000"},
		{Address: "invalid", Balance: "50"},
		{Address: addrB, Balance: "10"},
	}

	plan, err := Build(holders, Options{
		MinBalance:   decimal.NewFromInt(20),
		MaxBatchSize: 2,
		Decimals:     18,
	})
	require.NoError(t, err)
	require.Len(t, plan.Batches, 1)

	batch := plan.Batches[0]
	require.Equal(t, []common.Address{common.HexToAddress(addrA)}, batch.Addresses)
	require.Len(t, batch.Amounts, 1)
	require.Equal(t, 0, batch.Amounts[0].Cmp(eth(1000)), "amount = %s", batch.Amounts[0])

	require.Len(t, plan.Dropped, 2)
	require.Equal(t, DropInvalidAddress, plan.Dropped[0].Reason)
	require.Equal(t, DropBelowThreshold, plan.Dropped[1].Reason)
}

func TestBuild_StrictAddressesFails(t *testing.T) {
	holders := []Holder{
		{Address: addrA, Balance: "1000"},
		{Address: "0x1234", Balance: "50"},
	}

	_, err := Build(holders, Options{MaxBatchSize: 10, Decimals: 18, StrictAddresses: true})
	if !errors.Is(err, ErrInvalidAddress) {
		t.Fatalf("expected ErrInvalidAddress, got %v", err)
	}

	var recErr *RecordError
	if !errors.As(err, &recErr) {
		t.Fatalf("expected *RecordError, got %T", err)
	}
	if recErr.Index != 1 {
		t.Fatalf("expected failing index 1, got %d", recErr.Index)
	}
}

func TestBuild_NonNumericBalanceFails(t *testing.T) {
	for _, balance := range []string{"abc", "", "null", "12,5"} {
		holders := []Holder{{Address: addrA, Balance: balance}}
		_, err := Build(holders, Options{MaxBatchSize: 10, Decimals: 18})
		if !errors.Is(err, ErrNonNumericBalance) {
			t.Fatalf("balance %q: expected ErrNonNumericBalance, got %v", balance, err)
		}
	}
}

func TestBuild_NegativeBalanceFails(t *testing.T) {
	for _, minBalance := range []int64{0, 20} {
		holders := []Holder{
			{Address: addrA, Balance: "1000"},
			{Address: addrB, Balance: "-5"},
		}
		_, err := Build(holders, Options{MinBalance: decimal.NewFromInt(minBalance), MaxBatchSize: 10, Decimals: 18})
		require.ErrorIs(t, err, ErrNonNumericBalance, "min balance %d", minBalance)

		var recErr *RecordError
		require.ErrorAs(t, err, &recErr)
		require.Equal(t, 1, recErr.Index)
	}
}

func TestPlanHash(t *testing.T) {
	holders := []Holder{
		{Address: addrA, Balance: "100"},
		{Address: addrB, Balance: "50"},
	}

	filter := func(opts Options) common.Hash {
		recipients, _, err := Filter(holders, opts)
		require.NoError(t, err)
		return PlanHash(recipients)
	}

	base := filter(Options{Decimals: 18})
	require.Equal(t, base, filter(Options{Decimals: 18}))
	require.NotEqual(t, base, filter(Options{Decimals: 6}))
	require.NotEqual(t, base, filter(Options{Decimals: 18, Exclude: []string{addrB}}))
	require.NotEqual(t, base, filter(Options{Decimals: 18, MinBalance: decimal.NewFromInt(60)}))

	swapped, _, err := Filter([]Holder{holders[1], holders[0]}, Options{Decimals: 18})
	require.NoError(t, err)
	require.NotEqual(t, base, PlanHash(swapped))
}

func TestBuild_ChunksPreserveOrderWithoutDuplicates(t *testing.T) {
	var holders []Holder
	var want []common.Address
	for i := 0; i < 23; i++ {
		holders = append(holders, Holder{Address: testAddress(i), Balance: fmt.Sprintf("%d", 100+i)})
		want = append(want, common.HexToAddress(testAddress(i)))
	}
	// duplicate of the first holder is dropped, the first occurrence wins
	holders = append(holders, Holder{Address: testAddress(0), Balance: "999"})

	plan, err := Build(holders, Options{MaxBatchSize: 5, Decimals: 18})
	require.NoError(t, err)
	require.Len(t, plan.Batches, 5)

	var got []common.Address
	for i, b := range plan.Batches {
		if b.Size() > 5 {
			t.Fatalf("batch %d exceeds max size: %d", i, b.Size())
		}
		if len(b.Addresses) != len(b.Amounts) {
			t.Fatalf("batch %d has %d addresses and %d amounts", i, len(b.Addresses), len(b.Amounts))
		}
		if b.Index != i || b.Offset != i*5 {
			t.Fatalf("batch %d has index %d offset %d", i, b.Index, b.Offset)
		}
		got = append(got, b.Addresses...)
	}
	require.Equal(t, want, got)
	require.Equal(t, 0, plan.Batches[0].Amounts[0].Cmp(eth(100)))
	require.Equal(t, DropDuplicate, plan.Dropped[0].Reason)
	require.Equal(t, 23, plan.Remaining())
}

func TestBuild_ResumeMatchesDiscardedPrefix(t *testing.T) {
	var holders []Holder
	for i := 0; i < 17; i++ {
		balance := "5"
		if i%3 != 0 {
			balance = fmt.Sprintf("%d.25", 30+i)
		}
		holders = append(holders, Holder{Address: testAddress(i), Balance: balance})
	}
	opts := Options{MinBalance: decimal.NewFromInt(20), MaxBatchSize: 4, Decimals: 6}

	full, err := Build(holders, opts)
	require.NoError(t, err)

	for k := 0; k <= len(full.Recipients)+1; k++ {
		resumed := opts
		resumed.StartOffset = k
		plan, err := Build(holders, resumed)
		require.NoError(t, err)

		var rest []Recipient
		if k < len(full.Recipients) {
			rest = full.Recipients[k:]
		}
		expected, err := Chunk(rest, opts.MaxBatchSize, 0)
		require.NoError(t, err)
		require.Len(t, plan.Batches, len(expected), "offset %d", k)

		for i := range expected {
			require.Equal(t, expected[i].Addresses, plan.Batches[i].Addresses, "offset %d batch %d", k, i)
			require.Equal(t, expected[i].Amounts, plan.Batches[i].Amounts, "offset %d batch %d", k, i)
			require.Equal(t, k+expected[i].Offset, plan.Batches[i].Offset)
		}
	}
}

func TestFilter_ExclusionIsCaseInsensitive(t *testing.T) {
	checksummed := common.HexToAddress("0xee0d6c5379eeebd193473feeecfefc3ecfa98d90").Hex()
	holders := []Holder{
		{Address: checksummed, Balance: "100"},
		{Address: addrB, Balance: "100"},
	}

	recipients, dropped, err := Filter(holders, Options{
		Decimals: 18,
		Exclude:  []string{"0xEE0D6C5379EEEBD193473FEEECFEFC3ECFA98D90"},
	})
	require.NoError(t, err)
	require.Len(t, recipients, 1)
	require.Equal(t, common.HexToAddress(addrB), recipients[0].Address)
	require.Equal(t, []Drop{{Index: 0, Address: checksummed, Reason: DropExcluded}}, dropped)
}

func TestFilter_TruncateBalances(t *testing.T) {
	holders := []Holder{
		{Address: addrA, Balance: "21.9"},
		{Address: addrB, Balance: "0.4"},
	}

	recipients, dropped, err := Filter(holders, Options{Decimals: 18, TruncateBalances: true})
	require.NoError(t, err)
	require.Len(t, recipients, 1)
	require.Equal(t, 0, recipients[0].Amount.Cmp(eth(21)))
	require.Equal(t, DropZeroAmount, dropped[0].Reason)
}

func TestChunk_InvalidArguments(t *testing.T) {
	if _, err := Chunk(nil, 0, 0); !errors.Is(err, ErrInvalidBatchSize) {
		t.Fatalf("expected ErrInvalidBatchSize, got %v", err)
	}
	if _, err := Chunk(nil, 10, -1); !errors.Is(err, ErrInvalidOffset) {
		t.Fatalf("expected ErrInvalidOffset, got %v", err)
	}
}

func TestChunk_CopiesAmounts(t *testing.T) {
	recipients := []Recipient{{Address: common.HexToAddress(addrC), Amount: big.NewInt(7)}}
	batches, err := Chunk(recipients, 1, 0)
	require.NoError(t, err)

	batches[0].Amounts[0].SetInt64(1)
	require.Equal(t, int64(7), recipients[0].Amount.Int64())
}
