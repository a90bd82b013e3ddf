package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/glipgg/btx-ops/pkg/airdrop"
	"github.com/glipgg/btx-ops/pkg/pgutil"
	mghelper "github.com/glipgg/btx-ops/pkg/pgutil/migrations"
)

func setupStore(t *testing.T) (context.Context, Store) {
	t.Helper()

	ctx := context.Background()
	db, cleanup := pgutil.SetupTestDB(t)
	t.Cleanup(cleanup)

	if err := mghelper.CreateSchema(ctx, db, (*RunDao)(nil), (*BatchDao)(nil)); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return ctx, NewStore(db)
}

func newTestRun(name string, total int) *airdrop.Run {
	return &airdrop.Run{
		Name:         name,
		Contract:     "0x1111111111111111111111111111111111111111",
		SnapshotHash: "0xabc",
		PlanHash:     "0xdef",
		Total:        total,
	}
}

func TestPgStore(t *testing.T) {
	ctx, s := setupStore(t)

	t.Run("create and get run", func(t *testing.T) {
		run := newTestRun("create-get", 10)
		require.NoError(t, s.CreateRun(ctx, run))
		require.NotEqual(t, uuid.Nil, run.ID)
		require.Equal(t, airdrop.RunStatusRunning, run.Status)

		got, err := s.GetRunByName(ctx, "create-get")
		require.NoError(t, err)
		require.Equal(t, run.ID, got.ID)
		require.Equal(t, 10, got.Total)
		require.Equal(t, 0, got.NextOffset)
		require.Equal(t, "0xabc", got.SnapshotHash)
		require.Equal(t, "0xdef", got.PlanHash)
	})

	t.Run("missing run", func(t *testing.T) {
		_, err := s.GetRunByName(ctx, "nope")
		if !errors.Is(err, ErrRunNotFound) {
			t.Fatalf("expected ErrRunNotFound, got %v", err)
		}
		require.ErrorIs(t, s.CompleteRun(ctx, uuid.New()), ErrRunNotFound)
	})

	t.Run("duplicate run name rejected", func(t *testing.T) {
		require.NoError(t, s.CreateRun(ctx, newTestRun("dup", 1)))
		require.Error(t, s.CreateRun(ctx, newTestRun("dup", 1)))
	})

	t.Run("confirm advances checkpoint", func(t *testing.T) {
		run := newTestRun("confirm", 5)
		require.NoError(t, s.CreateRun(ctx, run))

		_, err := s.GetPendingBatch(ctx, run.ID)
		require.ErrorIs(t, err, ErrBatchNotFound)

		batch := &airdrop.BatchRecord{RunID: run.ID, Offset: 0, Size: 2, TxHash: "0x01", Nonce: 7}
		require.NoError(t, s.RecordBatchSubmitted(ctx, batch))
		require.NotZero(t, batch.ID)

		pending, err := s.GetPendingBatch(ctx, run.ID)
		require.NoError(t, err)
		require.Equal(t, batch.ID, pending.ID)
		require.Equal(t, uint64(7), pending.Nonce)
		require.Equal(t, airdrop.BatchStatusPending, pending.Status)

		require.NoError(t, s.ConfirmBatch(ctx, batch.ID))

		got, err := s.GetRunByName(ctx, "confirm")
		require.NoError(t, err)
		require.Equal(t, 2, got.NextOffset)

		_, err = s.GetPendingBatch(ctx, run.ID)
		require.ErrorIs(t, err, ErrBatchNotFound)

		// a second outcome for the same batch is rejected and leaves the checkpoint alone
		require.ErrorIs(t, s.ConfirmBatch(ctx, batch.ID), ErrBatchNotPending)
		require.ErrorIs(t, s.FailBatch(ctx, batch.ID, "late"), ErrBatchNotPending)
		require.ErrorIs(t, s.ConfirmBatch(ctx, 999999), ErrBatchNotFound)
	})

	t.Run("failed batch keeps checkpoint", func(t *testing.T) {
		run := newTestRun("fail", 5)
		require.NoError(t, s.CreateRun(ctx, run))

		batch := &airdrop.BatchRecord{RunID: run.ID, Offset: 0, Size: 3, TxHash: "0x02", Nonce: 1}
		require.NoError(t, s.RecordBatchSubmitted(ctx, batch))
		require.NoError(t, s.FailBatch(ctx, batch.ID, "execution reverted"))

		got, err := s.GetRunByName(ctx, "fail")
		require.NoError(t, err)
		require.Equal(t, 0, got.NextOffset)

		retry := &airdrop.BatchRecord{RunID: run.ID, Offset: 0, Size: 3, TxHash: "0x03", Nonce: 2}
		require.NoError(t, s.RecordBatchSubmitted(ctx, retry))
		require.NoError(t, s.ConfirmBatch(ctx, retry.ID))

		batches, err := s.ListBatches(ctx, run.ID)
		require.NoError(t, err)
		require.Len(t, batches, 2)
		require.Equal(t, airdrop.BatchStatusFailed, batches[0].Status)
		require.Equal(t, "execution reverted", batches[0].Error)
		require.Equal(t, airdrop.BatchStatusConfirmed, batches[1].Status)
	})

	t.Run("complete run", func(t *testing.T) {
		run := newTestRun("complete", 0)
		require.NoError(t, s.CreateRun(ctx, run))
		require.NoError(t, s.CompleteRun(ctx, run.ID))

		got, err := s.GetRunByName(ctx, "complete")
		require.NoError(t, err)
		require.Equal(t, airdrop.RunStatusCompleted, got.Status)
		require.True(t, got.Done())
	})
}
