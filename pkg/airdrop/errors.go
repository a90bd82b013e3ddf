package airdrop

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAddress is returned for a malformed holder address when strict address checking is enabled
	ErrInvalidAddress = errors.New("invalid address")
	// ErrNonNumericBalance is returned when a holder balance cannot be parsed as a non-negative decimal
	ErrNonNumericBalance = errors.New("non-numeric balance")
	// ErrInvalidBatchSize is returned for a batch size that is not positive
	ErrInvalidBatchSize = errors.New("batch size must be positive")
	// ErrInvalidOffset is returned for a negative start offset
	ErrInvalidOffset = errors.New("start offset must not be negative")
	// ErrUnknownSnapshotFormat is returned when the snapshot layout cannot be recognised
	ErrUnknownSnapshotFormat = errors.New("unknown snapshot format")
)

// RecordError describes a snapshot record that stopped the build.
type RecordError struct {
	Index   int
	Address string
	Balance string
	Err     error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("holder #%d (address=%q balance=%q): %v", e.Index, e.Address, e.Balance, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
