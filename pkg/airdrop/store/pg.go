package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/glipgg/btx-ops/pkg/airdrop"
)

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the checkpoint store
func NewStore(db *bun.DB) Store {
	return &pgStore{db: db}
}

func (s *pgStore) GetRunByName(ctx context.Context, name string) (*airdrop.Run, error) {
	dao := new(RunDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("name = ?", name).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to get run %s: %w", name, err)
	}
	return toRun(dao), nil
}

func (s *pgStore) CreateRun(ctx context.Context, run *airdrop.Run) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.Status == "" {
		run.Status = airdrop.RunStatusRunning
	}

	dao := toRunDao(run)
	_, err := s.db.NewInsert().
		Model(dao).
		Returning("created_at, updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	run.CreatedAt = dao.CreatedAt
	run.UpdatedAt = dao.UpdatedAt
	return nil
}

func (s *pgStore) CompleteRun(ctx context.Context, runID uuid.UUID) error {
	res, err := s.db.NewUpdate().
		Model((*RunDao)(nil)).
		Set("status = ?", string(airdrop.RunStatusCompleted)).
		Set("updated_at = NOW()").
		Where("id = ?", runID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return requireAffected(res, ErrRunNotFound)
}

func (s *pgStore) GetPendingBatch(ctx context.Context, runID uuid.UUID) (*airdrop.BatchRecord, error) {
	dao := new(BatchDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("run_id = ?", runID).
		Where("status = ?", string(airdrop.BatchStatusPending)).
		OrderExpr("id DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBatchNotFound
		}
		return nil, fmt.Errorf("failed to get pending batch: %w", err)
	}
	return toBatch(dao), nil
}

func (s *pgStore) RecordBatchSubmitted(ctx context.Context, batch *airdrop.BatchRecord) error {
	batch.Status = airdrop.BatchStatusPending
	dao := toBatchDao(batch)
	_, err := s.db.NewInsert().
		Model(dao).
		Returning("id, created_at, updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to record batch: %w", err)
	}
	batch.ID = dao.ID
	batch.CreatedAt = dao.CreatedAt
	batch.UpdatedAt = dao.UpdatedAt
	return nil
}

func (s *pgStore) ConfirmBatch(ctx context.Context, batchID int64) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		dao := new(BatchDao)
		err := tx.NewSelect().
			Model(dao).
			Where("id = ?", batchID).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrBatchNotFound
			}
			return fmt.Errorf("failed to load batch: %w", err)
		}
		if dao.Status != string(airdrop.BatchStatusPending) {
			return fmt.Errorf("%w: batch %d is %s", ErrBatchNotPending, batchID, dao.Status)
		}

		_, err = tx.NewUpdate().
			Model((*BatchDao)(nil)).
			Set("status = ?", string(airdrop.BatchStatusConfirmed)).
			Set("updated_at = NOW()").
			Where("id = ?", batchID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to confirm batch: %w", err)
		}

		_, err = tx.NewUpdate().
			Model((*RunDao)(nil)).
			Set("next_offset = GREATEST(next_offset, ?)", dao.Offset+dao.Size).
			Set("updated_at = NOW()").
			Where("id = ?", dao.RunID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to advance run checkpoint: %w", err)
		}
		return nil
	})
}

func (s *pgStore) FailBatch(ctx context.Context, batchID int64, reason string) error {
	res, err := s.db.NewUpdate().
		Model((*BatchDao)(nil)).
		Set("status = ?", string(airdrop.BatchStatusFailed)).
		Set("error = ?", reason).
		Set("updated_at = NOW()").
		Where("id = ?", batchID).
		Where("status = ?", string(airdrop.BatchStatusPending)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to fail batch: %w", err)
	}
	return requireAffected(res, ErrBatchNotPending)
}

func (s *pgStore) ListBatches(ctx context.Context, runID uuid.UUID) ([]*airdrop.BatchRecord, error) {
	var daos []BatchDao
	err := s.db.NewSelect().
		Model(&daos).
		Where("run_id = ?", runID).
		OrderExpr("batch_offset ASC, id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	batches := make([]*airdrop.BatchRecord, len(daos))
	for i := range daos {
		batches[i] = toBatch(&daos[i])
	}
	return batches, nil
}

func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
