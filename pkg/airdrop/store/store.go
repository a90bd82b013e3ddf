// Package store persists airdrop run checkpoints
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/glipgg/btx-ops/pkg/airdrop"
)

var (
	// ErrRunNotFound is returned when no run matches the lookup
	ErrRunNotFound = errors.New("airdrop run not found")
	// ErrBatchNotFound is returned when no batch matches the lookup
	ErrBatchNotFound = errors.New("airdrop batch not found")
	// ErrBatchNotPending is returned when a batch outcome is recorded twice
	ErrBatchNotPending = errors.New("airdrop batch is not pending")
)

//go:generate mockery --name Store --output mocks --outpkg mocks --filename mock_store.go --with-expecter

// Store defines checkpoint persistence for airdrop runs
type Store interface {
	GetRunByName(ctx context.Context, name string) (*airdrop.Run, error)
	CreateRun(ctx context.Context, run *airdrop.Run) error
	CompleteRun(ctx context.Context, runID uuid.UUID) error

	// GetPendingBatch returns the batch of runID still waiting for a receipt, or ErrBatchNotFound
	GetPendingBatch(ctx context.Context, runID uuid.UUID) (*airdrop.BatchRecord, error)
	RecordBatchSubmitted(ctx context.Context, batch *airdrop.BatchRecord) error
	// ConfirmBatch marks the batch confirmed and advances the run checkpoint past it in one transaction
	ConfirmBatch(ctx context.Context, batchID int64) error
	FailBatch(ctx context.Context, batchID int64, reason string) error
	ListBatches(ctx context.Context, runID uuid.UUID) ([]*airdrop.BatchRecord, error)
}
