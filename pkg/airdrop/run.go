package airdrop

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus is the lifecycle state of an airdrop run
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
)

// BatchStatus is the state of a submitted batch transaction
type BatchStatus string

const (
	BatchStatusPending   BatchStatus = "pending"
	BatchStatusConfirmed BatchStatus = "confirmed"
	BatchStatusFailed    BatchStatus = "failed"
)

// Run is the resumable checkpoint of distributing one snapshot through one contract.
// NextOffset is the position in the filtered recipient sequence of the first
// recipient not yet covered by a confirmed batch. PlanHash fingerprints that
// sequence so a resume with different filter settings is refused.
type Run struct {
	ID           uuid.UUID
	Name         string
	Contract     string
	SnapshotHash string
	PlanHash     string
	Total        int
	NextOffset   int
	Status       RunStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Done reports whether every recipient has been covered
func (r *Run) Done() bool {
	return r.Status == RunStatusCompleted || r.NextOffset >= r.Total
}

// BatchRecord tracks one submitted airdrop transaction
type BatchRecord struct {
	ID        int64
	RunID     uuid.UUID
	Offset    int
	Size      int
	TxHash    string
	Nonce     uint64
	Status    BatchStatus
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
