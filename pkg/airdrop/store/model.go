package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/glipgg/btx-ops/pkg/airdrop"
)

// RunDao maps to the 'airdrop_runs' table
type RunDao struct {
	bun.BaseModel `bun:"table:airdrop_runs,alias:r"`
	ID            uuid.UUID `bun:"id,pk,type:uuid"`
	Name          string    `bun:"name,unique,notnull,type:varchar(128)"`
	Contract      string    `bun:"contract,notnull,type:varchar(42)"`
	SnapshotHash  string    `bun:"snapshot_hash,notnull,type:varchar(66)"`
	PlanHash      string    `bun:"plan_hash,notnull,type:varchar(66),default:''"`
	Total         int       `bun:"total,notnull"`
	NextOffset    int       `bun:"next_offset,notnull,default:0"`
	Status        string    `bun:"status,notnull,type:varchar(16)"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// BatchDao maps to the 'airdrop_batches' table
type BatchDao struct {
	bun.BaseModel `bun:"table:airdrop_batches,alias:b"`
	ID            int64     `bun:"id,pk,autoincrement"`
	RunID         uuid.UUID `bun:"run_id,notnull,type:uuid"`
	Offset        int       `bun:"batch_offset,notnull"`
	Size          int       `bun:"size,notnull"`
	TxHash        string    `bun:"tx_hash,notnull,type:varchar(66)"`
	Nonce         int64     `bun:"nonce,notnull"`
	Status        string    `bun:"status,notnull,type:varchar(16)"`
	Error         *string   `bun:"error,type:text"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func toRunDao(run *airdrop.Run) *RunDao {
	return &RunDao{
		ID:           run.ID,
		Name:         run.Name,
		Contract:     run.Contract,
		SnapshotHash: run.SnapshotHash,
		PlanHash:     run.PlanHash,
		Total:        run.Total,
		NextOffset:   run.NextOffset,
		Status:       string(run.Status),
	}
}

func toRun(dao *RunDao) *airdrop.Run {
	return &airdrop.Run{
		ID:           dao.ID,
		Name:         dao.Name,
		Contract:     dao.Contract,
		SnapshotHash: dao.SnapshotHash,
		PlanHash:     dao.PlanHash,
		Total:        dao.Total,
		NextOffset:   dao.NextOffset,
		Status:       airdrop.RunStatus(dao.Status),
		CreatedAt:    dao.CreatedAt,
		UpdatedAt:    dao.UpdatedAt,
	}
}

func toBatchDao(b *airdrop.BatchRecord) *BatchDao {
	dao := &BatchDao{
		RunID:  b.RunID,
		Offset: b.Offset,
		Size:   b.Size,
		TxHash: b.TxHash,
		Nonce:  int64(b.Nonce),
		Status: string(b.Status),
	}
	if b.Error != "" {
		dao.Error = &b.Error
	}
	return dao
}

func toBatch(dao *BatchDao) *airdrop.BatchRecord {
	b := &airdrop.BatchRecord{
		ID:        dao.ID,
		RunID:     dao.RunID,
		Offset:    dao.Offset,
		Size:      dao.Size,
		TxHash:    dao.TxHash,
		Nonce:     uint64(dao.Nonce),
		Status:    airdrop.BatchStatus(dao.Status),
		CreatedAt: dao.CreatedAt,
		UpdatedAt: dao.UpdatedAt,
	}
	if dao.Error != nil {
		b.Error = *dao.Error
	}
	return b
}
