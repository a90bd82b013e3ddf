package airdrop

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
)

// DropReason explains why a snapshot record was left out of the distribution.
type DropReason string

const (
	DropInvalidAddress DropReason = "invalid_address"
	DropBelowThreshold DropReason = "below_threshold"
	DropExcluded       DropReason = "excluded"
	DropDuplicate      DropReason = "duplicate"
	DropZeroAmount     DropReason = "zero_amount"
)

// Options configures filtering, amount scaling and chunking.
type Options struct {
	// MinBalance is exclusive: balances at or below it are dropped.
	MinBalance   decimal.Decimal
	MaxBatchSize int
	// StartOffset is a position in the filtered sequence; entries before it are treated as delivered.
	StartOffset int
	Decimals    int32
	// Exclude lists blacklisted addresses, compared case-insensitively.
	Exclude         []string
	StrictAddresses bool
	// TruncateBalances drops the fractional part of each balance before scaling.
	TruncateBalances bool
}

// Recipient is a filtered holder with its amount in base units.
type Recipient struct {
	Address common.Address
	Amount  *big.Int
}

// Drop records a snapshot entry that was filtered out.
type Drop struct {
	Index   int
	Address string
	Reason  DropReason
}

// Batch is one distribution call: parallel, equal-length address and amount lists.
type Batch struct {
	Index     int
	Offset    int
	Addresses []common.Address
	Amounts   []*big.Int
}

// Size returns the number of recipients in the batch.
func (b Batch) Size() int {
	return len(b.Addresses)
}

// Total returns the sum of amounts in the batch.
func (b Batch) Total() *big.Int {
	return sum(b.Amounts)
}

// Plan is the result of a build.
type Plan struct {
	// Recipients is the full filtered sequence, including entries before the start offset.
	Recipients []Recipient
	Batches    []Batch
	Dropped    []Drop
}

// Remaining returns how many recipients are covered by the plan's batches.
func (p *Plan) Remaining() int {
	n := 0
	for _, b := range p.Batches {
		n += b.Size()
	}
	return n
}

// Total returns the sum of all batch amounts.
func (p *Plan) Total() *big.Int {
	total := new(big.Int)
	for _, b := range p.Batches {
		total.Add(total, b.Total())
	}
	return total
}

// Build filters holders and chunks the result into batches.
func Build(holders []Holder, opts Options) (*Plan, error) {
	recipients, dropped, err := Filter(holders, opts)
	if err != nil {
		return nil, err
	}

	batches, err := Chunk(recipients, opts.MaxBatchSize, opts.StartOffset)
	if err != nil {
		return nil, err
	}

	return &Plan{Recipients: recipients, Batches: batches, Dropped: dropped}, nil
}

// Filter applies every filter in one pass and derives amounts from the surviving records only,
// so addresses and amounts can never drift apart. Snapshot order is preserved.
func Filter(holders []Holder, opts Options) ([]Recipient, []Drop, error) {
	excluded := make(map[string]struct{}, len(opts.Exclude))
	for _, a := range opts.Exclude {
		excluded[strings.ToLower(strings.TrimSpace(a))] = struct{}{}
	}

	seen := make(map[common.Address]struct{}, len(holders))
	recipients := make([]Recipient, 0, len(holders))
	var dropped []Drop

	for i, h := range holders {
		raw := strings.TrimSpace(h.Address)
		if !ValidAddress(raw) {
			if opts.StrictAddresses {
				return nil, nil, &RecordError{Index: i, Address: h.Address, Balance: h.Balance, Err: ErrInvalidAddress}
			}
			dropped = append(dropped, Drop{Index: i, Address: h.Address, Reason: DropInvalidAddress})
			continue
		}
		addr := common.HexToAddress(raw)

		balance, err := ParseBalance(h.Balance)
		if err != nil || balance.IsNegative() {
			return nil, nil, &RecordError{Index: i, Address: h.Address, Balance: h.Balance, Err: ErrNonNumericBalance}
		}

		if balance.LessThanOrEqual(opts.MinBalance) {
			dropped = append(dropped, Drop{Index: i, Address: addr.Hex(), Reason: DropBelowThreshold})
			continue
		}
		if _, ok := excluded[strings.ToLower(addr.Hex())]; ok {
			dropped = append(dropped, Drop{Index: i, Address: addr.Hex(), Reason: DropExcluded})
			continue
		}
		if _, ok := seen[addr]; ok {
			dropped = append(dropped, Drop{Index: i, Address: addr.Hex(), Reason: DropDuplicate})
			continue
		}

		amount, err := ToBaseUnits(balance, opts.Decimals, opts.TruncateBalances)
		if err != nil {
			return nil, nil, &RecordError{Index: i, Address: h.Address, Balance: h.Balance, Err: err}
		}
		if amount.Sign() == 0 {
			dropped = append(dropped, Drop{Index: i, Address: addr.Hex(), Reason: DropZeroAmount})
			continue
		}

		seen[addr] = struct{}{}
		recipients = append(recipients, Recipient{Address: addr, Amount: amount})
	}

	return recipients, dropped, nil
}

// PlanHash fingerprints a filtered recipient sequence. Any change to an address,
// an amount or their order yields a different hash.
func PlanHash(recipients []Recipient) common.Hash {
	buf := make([]byte, 0, len(recipients)*(common.AddressLength+32))
	for _, r := range recipients {
		buf = append(buf, r.Address.Bytes()...)
		buf = append(buf, common.LeftPadBytes(r.Amount.Bytes(), 32)...)
	}
	return crypto.Keccak256Hash(buf)
}

// Chunk partitions recipients[startOffset:] into consecutive batches of at most maxBatchSize.
func Chunk(recipients []Recipient, maxBatchSize, startOffset int) ([]Batch, error) {
	if maxBatchSize <= 0 {
		return nil, ErrInvalidBatchSize
	}
	if startOffset < 0 {
		return nil, ErrInvalidOffset
	}

	var batches []Batch
	for off := startOffset; off < len(recipients); off += maxBatchSize {
		end := min(off+maxBatchSize, len(recipients))

		batch := Batch{
			Index:     len(batches),
			Offset:    off,
			Addresses: make([]common.Address, 0, end-off),
			Amounts:   make([]*big.Int, 0, end-off),
		}
		for _, r := range recipients[off:end] {
			batch.Addresses = append(batch.Addresses, r.Address)
			batch.Amounts = append(batch.Amounts, new(big.Int).Set(r.Amount))
		}
		batches = append(batches, batch)
	}
	return batches, nil
}

func sum(values []*big.Int) *big.Int {
	total := new(big.Int)
	for _, v := range values {
		total.Add(total, v)
	}
	return total
}
