package service

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/glipgg/btx-ops/pkg/airdrop"
	"github.com/glipgg/btx-ops/pkg/airdrop/service/mocks"
	"github.com/glipgg/btx-ops/pkg/airdrop/store"
	storemocks "github.com/glipgg/btx-ops/pkg/airdrop/store/mocks"
	"github.com/glipgg/btx-ops/pkg/ethereum"
)

var distributorAddress = common.HexToAddress("0x00000000000000000000000000000000000000aa")

func holderAddress(i int) string {
	return fmt.Sprintf("0x%040x", i+1)
}

// newSnapshot returns n holders each holding 100 tokens
func newSnapshot(n int) *airdrop.Snapshot {
	holders := make([]airdrop.Holder, n)
	for i := range holders {
		holders[i] = airdrop.Holder{Address: holderAddress(i), Balance: "100"}
	}
	return &airdrop.Snapshot{Holders: holders, Hash: common.HexToHash("0x5eed")}
}

func newRequest(n int, mode Mode) *Request {
	return &Request{
		Name:     "btx-holders",
		Snapshot: newSnapshot(n),
		Options: airdrop.Options{
			MinBalance:   decimal.NewFromInt(20),
			MaxBatchSize: 2,
			Decimals:     18,
		},
		Mode: mode,
	}
}

// planHash is the fingerprint a run created from req carries
func planHash(t *testing.T, req *Request) string {
	t.Helper()
	recipients, _, err := airdrop.Filter(req.Snapshot.Holders, req.Options)
	require.NoError(t, err)
	return airdrop.PlanHash(recipients).Hex()
}

func newTx(nonce uint64) *types.Transaction {
	return types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &distributorAddress,
		Gas:      100000,
		GasPrice: big.NewInt(1),
	})
}

func successReceipt() *types.Receipt {
	return &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(1), GasUsed: 50000}
}

// expectBatchSubmitted wires one successful estimate, sign, record, send, wait and confirm
func expectBatchSubmitted(st *storemocks.Store, dist *mocks.Distributor, nonce uint64, batchID int64) {
	tx := newTx(nonce)
	dist.EXPECT().EstimateAirdrop(mock.Anything, mock.Anything, mock.Anything).Return(60000, nil).Once()
	dist.EXPECT().SignAirdrop(mock.Anything, mock.Anything, mock.Anything).Return(tx, nil).Once()
	st.EXPECT().RecordBatchSubmitted(mock.Anything, mock.MatchedBy(func(b *airdrop.BatchRecord) bool {
		return b.TxHash == tx.Hash().Hex() && b.Nonce == nonce
	})).Run(func(_ context.Context, b *airdrop.BatchRecord) {
		b.ID = batchID
	}).Return(nil).Once()
	dist.EXPECT().Send(mock.Anything, tx).Return(nil).Once()
	dist.EXPECT().WaitMined(mock.Anything, tx.Hash()).Return(successReceipt(), nil).Once()
	st.EXPECT().ConfirmBatch(mock.Anything, batchID).Return(nil).Once()
}

func TestAirdropService_EstimateDoesNotTouchStore(t *testing.T) {
	ctx := context.Background()
	dist := mocks.NewDistributor(t)
	st := storemocks.NewStore(t)

	dist.EXPECT().EstimateAirdrop(ctx, mock.Anything, mock.Anything).Return(uint64(70000), nil).Times(3)

	svc := NewService(st, dist, zap.NewNop())
	res, err := svc.Run(ctx, newRequest(5, ModeEstimate))
	require.NoError(t, err)
	require.Nil(t, res.Run)
	require.Len(t, res.Batches, 3)
	require.Equal(t, uint64(210000), res.GasTotal)
	require.Equal(t, 1, res.Batches[2].Size)
}

func TestAirdropService_EstimateFailureStops(t *testing.T) {
	ctx := context.Background()
	dist := mocks.NewDistributor(t)
	boom := errors.New("execution reverted: not owner")

	dist.EXPECT().EstimateAirdrop(ctx, mock.Anything, mock.Anything).Return(uint64(0), boom).Once()

	svc := NewService(nil, dist, zap.NewNop())
	res, err := svc.Run(ctx, newRequest(5, ModeEstimate))
	require.ErrorIs(t, err, boom)
	require.Empty(t, res.Batches)
}

func TestAirdropService_SubmitFreshRun(t *testing.T) {
	ctx := context.Background()
	dist := mocks.NewDistributor(t)
	st := storemocks.NewStore(t)
	runID := uuid.New()

	dist.EXPECT().Contract().Return(distributorAddress)
	st.EXPECT().GetRunByName(ctx, "btx-holders").Return(nil, store.ErrRunNotFound).Once()
	st.EXPECT().CreateRun(ctx, mock.MatchedBy(func(r *airdrop.Run) bool {
		return r.Total == 3 &&
			r.SnapshotHash == common.HexToHash("0x5eed").Hex() &&
			r.PlanHash == planHash(t, newRequest(3, ModeSubmit)) &&
			r.Contract == distributorAddress.Hex()
	})).Run(func(_ context.Context, r *airdrop.Run) {
		r.ID = runID
	}).Return(nil).Once()
	st.EXPECT().GetPendingBatch(ctx, runID).Return(nil, store.ErrBatchNotFound).Once()

	expectBatchSubmitted(st, dist, 0, 1)
	expectBatchSubmitted(st, dist, 1, 2)
	st.EXPECT().CompleteRun(ctx, runID).Return(nil).Once()

	svc := NewService(st, dist, zap.NewNop())
	res, err := svc.Run(ctx, newRequest(3, ModeSubmit))
	require.NoError(t, err)
	require.Len(t, res.Batches, 2)
	require.Equal(t, 3, res.Run.NextOffset)
	require.Equal(t, airdrop.RunStatusCompleted, res.Run.Status)
}

func TestAirdropService_SubmitResumesFromCheckpoint(t *testing.T) {
	ctx := context.Background()
	dist := mocks.NewDistributor(t)
	st := storemocks.NewStore(t)
	run := &airdrop.Run{
		ID:           uuid.New(),
		Name:         "btx-holders",
		Contract:     distributorAddress.Hex(),
		SnapshotHash: common.HexToHash("0x5eed").Hex(),
		PlanHash:     planHash(t, newRequest(5, ModeSubmit)),
		Total:        5,
		NextOffset:   2,
		Status:       airdrop.RunStatusRunning,
	}

	dist.EXPECT().Contract().Return(distributorAddress)
	st.EXPECT().GetRunByName(ctx, "btx-holders").Return(run, nil).Once()
	st.EXPECT().GetPendingBatch(ctx, run.ID).Return(nil, store.ErrBatchNotFound).Once()

	var firstUsers []common.Address
	dist.EXPECT().EstimateAirdrop(mock.Anything, mock.Anything, mock.Anything).
		Run(func(_ context.Context, users []common.Address, _ []*big.Int) {
			if firstUsers == nil {
				firstUsers = users
			}
		}).Return(uint64(60000), nil).Times(2)

	for i, nonce := range []uint64{7, 8} {
		tx := newTx(nonce)
		batchID := int64(10 + i)
		dist.EXPECT().SignAirdrop(mock.Anything, mock.Anything, mock.Anything).Return(tx, nil).Once()
		st.EXPECT().RecordBatchSubmitted(mock.Anything, mock.MatchedBy(func(b *airdrop.BatchRecord) bool {
			return b.Nonce == nonce
		})).Run(func(_ context.Context, b *airdrop.BatchRecord) {
			b.ID = batchID
		}).Return(nil).Once()
		dist.EXPECT().Send(mock.Anything, tx).Return(nil).Once()
		dist.EXPECT().WaitMined(mock.Anything, tx.Hash()).Return(successReceipt(), nil).Once()
		st.EXPECT().ConfirmBatch(mock.Anything, batchID).Return(nil).Once()
	}
	st.EXPECT().CompleteRun(ctx, run.ID).Return(nil).Once()

	svc := NewService(st, dist, zap.NewNop())
	res, err := svc.Run(ctx, newRequest(5, ModeSubmit))
	require.NoError(t, err)
	require.Len(t, res.Batches, 2)
	require.Equal(t, 2, res.Batches[0].Offset)
	require.Equal(t, []common.Address{
		common.HexToAddress(holderAddress(2)),
		common.HexToAddress(holderAddress(3)),
	}, firstUsers)
}

func TestAirdropService_SubmitRejectsDifferentSnapshot(t *testing.T) {
	ctx := context.Background()
	dist := mocks.NewDistributor(t)
	st := storemocks.NewStore(t)

	dist.EXPECT().Contract().Return(distributorAddress)
	st.EXPECT().GetRunByName(ctx, "btx-holders").Return(&airdrop.Run{
		ID:           uuid.New(),
		Name:         "btx-holders",
		Contract:     distributorAddress.Hex(),
		SnapshotHash: common.HexToHash("0xdead").Hex(),
		Total:        3,
	}, nil).Once()

	svc := NewService(st, dist, zap.NewNop())
	_, err := svc.Run(ctx, newRequest(3, ModeSubmit))
	if !errors.Is(err, ErrSnapshotMismatch) {
		t.Fatalf("expected ErrSnapshotMismatch, got %v", err)
	}
}

func TestAirdropService_SubmitRejectsChangedFilterOptions(t *testing.T) {
	withExclude := func(addr string) *Request {
		req := newRequest(4, ModeSubmit)
		req.Options.Exclude = []string{addr}
		return req
	}
	withDecimals := func(decimals int32) *Request {
		req := newRequest(3, ModeSubmit)
		req.Options.Decimals = decimals
		return req
	}

	tests := []struct {
		name     string
		planHash string
		resumed  *Request
	}{
		{
			name:     "decimals",
			planHash: planHash(t, withDecimals(18)),
			resumed:  withDecimals(6),
		},
		{
			name:     "blacklist with same count",
			planHash: planHash(t, withExclude(holderAddress(3))),
			resumed:  withExclude(holderAddress(0)),
		},
		{
			name:     "run without plan hash",
			planHash: "",
			resumed:  newRequest(3, ModeSubmit),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			dist := mocks.NewDistributor(t)
			st := storemocks.NewStore(t)

			dist.EXPECT().Contract().Return(distributorAddress)
			st.EXPECT().GetRunByName(ctx, "btx-holders").Return(&airdrop.Run{
				ID:           uuid.New(),
				Name:         "btx-holders",
				Contract:     distributorAddress.Hex(),
				SnapshotHash: common.HexToHash("0x5eed").Hex(),
				PlanHash:     tt.planHash,
				Total:        3,
				NextOffset:   2,
			}, nil).Once()

			svc := NewService(st, dist, zap.NewNop())
			_, err := svc.Run(ctx, tt.resumed)
			require.ErrorIs(t, err, ErrSnapshotMismatch)
		})
	}
}

func TestAirdropService_SubmitStopsOnUnminedPendingBatch(t *testing.T) {
	ctx := context.Background()
	dist := mocks.NewDistributor(t)
	st := storemocks.NewStore(t)
	run := &airdrop.Run{
		ID:           uuid.New(),
		Name:         "btx-holders",
		Contract:     distributorAddress.Hex(),
		SnapshotHash: common.HexToHash("0x5eed").Hex(),
		PlanHash:     planHash(t, newRequest(3, ModeSubmit)),
		Total:        3,
	}
	pending := &airdrop.BatchRecord{ID: 4, RunID: run.ID, Offset: 0, Size: 2, TxHash: newTx(3).Hash().Hex(), Nonce: 3}

	dist.EXPECT().Contract().Return(distributorAddress)
	st.EXPECT().GetRunByName(ctx, "btx-holders").Return(run, nil).Once()
	st.EXPECT().GetPendingBatch(ctx, run.ID).Return(pending, nil).Once()
	dist.EXPECT().Receipt(ctx, common.HexToHash(pending.TxHash)).Return(nil, ethereum.ErrReceiptNotFound).Once()
	dist.EXPECT().ConfirmedNonce(ctx).Return(uint64(3), nil).Once()

	svc := NewService(st, dist, zap.NewNop())
	_, err := svc.Run(ctx, newRequest(3, ModeSubmit))
	require.ErrorIs(t, err, ErrPendingTransaction)
}

func TestAirdropService_SubmitResendsBatchWithSpentNonce(t *testing.T) {
	ctx := context.Background()
	dist := mocks.NewDistributor(t)
	st := storemocks.NewStore(t)
	run := &airdrop.Run{
		ID:           uuid.New(),
		Name:         "btx-holders",
		Contract:     distributorAddress.Hex(),
		SnapshotHash: common.HexToHash("0x5eed").Hex(),
		PlanHash:     planHash(t, newRequest(3, ModeSubmit)),
		Total:        3,
	}
	pending := &airdrop.BatchRecord{ID: 4, RunID: run.ID, Offset: 0, Size: 2, TxHash: newTx(3).Hash().Hex(), Nonce: 3}

	dist.EXPECT().Contract().Return(distributorAddress)
	st.EXPECT().GetRunByName(ctx, "btx-holders").Return(run, nil).Twice()
	st.EXPECT().GetPendingBatch(ctx, run.ID).Return(pending, nil).Once()
	dist.EXPECT().Receipt(ctx, common.HexToHash(pending.TxHash)).Return(nil, ethereum.ErrReceiptNotFound).Twice()
	dist.EXPECT().ConfirmedNonce(ctx).Return(uint64(4), nil).Once()
	st.EXPECT().FailBatch(ctx, int64(4), "nonce consumed by another transaction").Return(nil).Once()

	expectBatchSubmitted(st, dist, 4, 5)
	expectBatchSubmitted(st, dist, 5, 6)
	st.EXPECT().CompleteRun(ctx, run.ID).Return(nil).Once()

	svc := NewService(st, dist, zap.NewNop())
	res, err := svc.Run(ctx, newRequest(3, ModeSubmit))
	require.NoError(t, err)
	require.Len(t, res.Batches, 2)
	require.Equal(t, 0, res.Batches[0].Offset)
}

func TestAirdropService_SubmitConfirmsBatchMinedDuringNonceCheck(t *testing.T) {
	ctx := context.Background()
	dist := mocks.NewDistributor(t)
	st := storemocks.NewStore(t)
	run := &airdrop.Run{
		ID:           uuid.New(),
		Name:         "btx-holders",
		Contract:     distributorAddress.Hex(),
		SnapshotHash: common.HexToHash("0x5eed").Hex(),
		PlanHash:     planHash(t, newRequest(3, ModeSubmit)),
		Total:        3,
	}
	advanced := *run
	advanced.NextOffset = 3
	pending := &airdrop.BatchRecord{ID: 4, RunID: run.ID, Offset: 0, Size: 3, TxHash: newTx(3).Hash().Hex(), Nonce: 3}
	hash := common.HexToHash(pending.TxHash)

	dist.EXPECT().Contract().Return(distributorAddress)
	st.EXPECT().GetRunByName(ctx, "btx-holders").Return(run, nil).Once()
	st.EXPECT().GetPendingBatch(ctx, run.ID).Return(pending, nil).Once()
	dist.EXPECT().Receipt(ctx, hash).Return(nil, ethereum.ErrReceiptNotFound).Once()
	dist.EXPECT().ConfirmedNonce(ctx).Return(uint64(4), nil).Once()
	dist.EXPECT().Receipt(ctx, hash).Return(successReceipt(), nil).Once()
	st.EXPECT().ConfirmBatch(ctx, int64(4)).Return(nil).Once()
	st.EXPECT().GetRunByName(ctx, "btx-holders").Return(&advanced, nil).Once()
	st.EXPECT().CompleteRun(ctx, run.ID).Return(nil).Once()

	svc := NewService(st, dist, zap.NewNop())
	res, err := svc.Run(ctx, newRequest(3, ModeSubmit))
	require.NoError(t, err)
	require.Empty(t, res.Batches)
	require.Equal(t, airdrop.RunStatusCompleted, res.Run.Status)
}

func TestAirdropService_SubmitConfirmsMinedPendingBatch(t *testing.T) {
	ctx := context.Background()
	dist := mocks.NewDistributor(t)
	st := storemocks.NewStore(t)
	run := &airdrop.Run{
		ID:           uuid.New(),
		Name:         "btx-holders",
		Contract:     distributorAddress.Hex(),
		SnapshotHash: common.HexToHash("0x5eed").Hex(),
		PlanHash:     planHash(t, newRequest(3, ModeSubmit)),
		Total:        3,
	}
	advanced := *run
	advanced.NextOffset = 2
	pending := &airdrop.BatchRecord{ID: 4, RunID: run.ID, Offset: 0, Size: 2, TxHash: newTx(3).Hash().Hex(), Nonce: 3}

	dist.EXPECT().Contract().Return(distributorAddress)
	st.EXPECT().GetRunByName(ctx, "btx-holders").Return(run, nil).Once()
	st.EXPECT().GetPendingBatch(ctx, run.ID).Return(pending, nil).Once()
	dist.EXPECT().Receipt(ctx, common.HexToHash(pending.TxHash)).Return(successReceipt(), nil).Once()
	st.EXPECT().ConfirmBatch(ctx, int64(4)).Return(nil).Once()
	st.EXPECT().GetRunByName(ctx, "btx-holders").Return(&advanced, nil).Once()

	expectBatchSubmitted(st, dist, 4, 5)
	st.EXPECT().CompleteRun(ctx, run.ID).Return(nil).Once()

	svc := NewService(st, dist, zap.NewNop())
	res, err := svc.Run(ctx, newRequest(3, ModeSubmit))
	require.NoError(t, err)
	require.Len(t, res.Batches, 1)
	require.Equal(t, 2, res.Batches[0].Offset)
	require.Equal(t, 1, res.Batches[0].Size)
}

func TestAirdropService_SubmitRevertedBatchFails(t *testing.T) {
	ctx := context.Background()
	dist := mocks.NewDistributor(t)
	st := storemocks.NewStore(t)
	runID := uuid.New()
	tx := newTx(0)

	dist.EXPECT().Contract().Return(distributorAddress)
	st.EXPECT().GetRunByName(ctx, "btx-holders").Return(nil, store.ErrRunNotFound).Once()
	st.EXPECT().CreateRun(ctx, mock.Anything).Run(func(_ context.Context, r *airdrop.Run) {
		r.ID = runID
	}).Return(nil).Once()
	st.EXPECT().GetPendingBatch(ctx, runID).Return(nil, store.ErrBatchNotFound).Once()

	dist.EXPECT().EstimateAirdrop(mock.Anything, mock.Anything, mock.Anything).Return(uint64(60000), nil).Once()
	dist.EXPECT().SignAirdrop(mock.Anything, mock.Anything, mock.Anything).Return(tx, nil).Once()
	st.EXPECT().RecordBatchSubmitted(mock.Anything, mock.Anything).Run(func(_ context.Context, b *airdrop.BatchRecord) {
		b.ID = 9
	}).Return(nil).Once()
	dist.EXPECT().Send(mock.Anything, tx).Return(nil).Once()
	dist.EXPECT().WaitMined(mock.Anything, tx.Hash()).
		Return(&types.Receipt{Status: types.ReceiptStatusFailed, BlockNumber: big.NewInt(1)},
			fmt.Errorf("%w: %s", ethereum.ErrTransactionReverted, tx.Hash().Hex())).Once()
	st.EXPECT().FailBatch(mock.Anything, int64(9), mock.Anything).Return(nil).Once()

	svc := NewService(st, dist, zap.NewNop())
	res, err := svc.Run(ctx, newRequest(3, ModeSubmit))
	require.ErrorIs(t, err, ethereum.ErrTransactionReverted)
	require.Len(t, res.Batches, 1)
}

func TestAirdropService_SubmitRequiresStoreAndName(t *testing.T) {
	ctx := context.Background()
	dist := mocks.NewDistributor(t)

	_, err := NewService(nil, dist, zap.NewNop()).Run(ctx, newRequest(3, ModeSubmit))
	require.ErrorIs(t, err, ErrStoreRequired)

	req := newRequest(3, ModeSubmit)
	req.Name = ""
	_, err = NewService(storemocks.NewStore(t), dist, zap.NewNop()).Run(ctx, req)
	require.ErrorIs(t, err, ErrRunNameRequired)
}

func TestAirdropService_Status(t *testing.T) {
	ctx := context.Background()
	st := storemocks.NewStore(t)
	run := &airdrop.Run{ID: uuid.New(), Name: "btx-holders", Total: 3, NextOffset: 2}
	batches := []*airdrop.BatchRecord{{ID: 1, RunID: run.ID, Size: 2, Status: airdrop.BatchStatusConfirmed}}

	st.EXPECT().GetRunByName(ctx, "btx-holders").Return(run, nil).Once()
	st.EXPECT().ListBatches(ctx, run.ID).Return(batches, nil).Once()

	svc := NewLog(NewService(st, nil, zap.NewNop()), zap.NewNop())
	status, err := svc.Status(ctx, "btx-holders")
	require.NoError(t, err)
	require.Equal(t, run, status.Run)
	require.Len(t, status.Batches, 1)
}

// expectSendAttempt wires a fresh run whose first batch is recorded and then broadcast with sendErr
func expectSendAttempt(ctx context.Context, st *storemocks.Store, dist *mocks.Distributor, tx *types.Transaction, sendErr error) {
	runID := uuid.New()
	dist.EXPECT().Contract().Return(distributorAddress)
	st.EXPECT().GetRunByName(ctx, "btx-holders").Return(nil, store.ErrRunNotFound).Once()
	st.EXPECT().CreateRun(ctx, mock.Anything).Run(func(_ context.Context, r *airdrop.Run) {
		r.ID = runID
	}).Return(nil).Once()
	st.EXPECT().GetPendingBatch(ctx, runID).Return(nil, store.ErrBatchNotFound).Once()

	dist.EXPECT().EstimateAirdrop(mock.Anything, mock.Anything, mock.Anything).Return(uint64(60000), nil).Once()
	dist.EXPECT().SignAirdrop(mock.Anything, mock.Anything, mock.Anything).Return(tx, nil).Once()
	st.EXPECT().RecordBatchSubmitted(mock.Anything, mock.Anything).Run(func(_ context.Context, b *airdrop.BatchRecord) {
		b.ID = 9
	}).Return(nil).Once()
	dist.EXPECT().Send(mock.Anything, tx).Return(sendErr).Once()
}

func TestAirdropService_SubmitLeavesAmbiguousSendPending(t *testing.T) {
	for _, sendErr := range []error{
		context.DeadlineExceeded,
		errors.New("Post \"http://localhost:8545\": EOF"),
	} {
		t.Run(sendErr.Error(), func(t *testing.T) {
			ctx := context.Background()
			dist := mocks.NewDistributor(t)
			st := storemocks.NewStore(t)
			tx := newTx(0)

			// no FailBatch expectation: the batch must stay pending for the next run to reconcile
			expectSendAttempt(ctx, st, dist, tx, sendErr)

			svc := NewService(st, dist, zap.NewNop())
			res, err := svc.Run(ctx, newRequest(3, ModeSubmit))
			require.ErrorIs(t, err, ErrPendingTransaction)
			require.ErrorIs(t, err, sendErr)
			require.ErrorContains(t, err, tx.Hash().Hex())
			require.Len(t, res.Batches, 1)
		})
	}
}

func TestAirdropService_SubmitFailsRejectedSend(t *testing.T) {
	ctx := context.Background()
	dist := mocks.NewDistributor(t)
	st := storemocks.NewStore(t)
	tx := newTx(0)
	rejected := errors.New("nonce too low: address 0x00000000000000000000000000000000000000aa, tx: 0 state: 4")

	expectSendAttempt(ctx, st, dist, tx, rejected)
	st.EXPECT().FailBatch(mock.Anything, int64(9), rejected.Error()).Return(nil).Once()

	svc := NewService(st, dist, zap.NewNop())
	_, err := svc.Run(ctx, newRequest(3, ModeSubmit))
	require.ErrorIs(t, err, rejected)
	require.NotErrorIs(t, err, ErrPendingTransaction)
}
