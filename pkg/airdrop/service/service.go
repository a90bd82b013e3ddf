// Package service drives an airdrop plan on chain with a persisted checkpoint
package service

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/glipgg/btx-ops/internal/metrics"
	"github.com/glipgg/btx-ops/pkg/airdrop"
	"github.com/glipgg/btx-ops/pkg/airdrop/store"
	"github.com/glipgg/btx-ops/pkg/ethereum"
)

var (
	// ErrSnapshotMismatch is returned when a named run is resumed with a different snapshot or filter
	ErrSnapshotMismatch = errors.New("snapshot does not match the existing run")
	// ErrContractMismatch is returned when a named run is resumed against another distributor
	ErrContractMismatch = errors.New("distributor does not match the existing run")
	// ErrPendingTransaction is returned when a submitted batch has neither succeeded nor failed yet
	ErrPendingTransaction = errors.New("previous batch transaction is still pending")
	// ErrStoreRequired is returned when submitting without a checkpoint store
	ErrStoreRequired = errors.New("checkpoint store is required to submit")
	// ErrRunNameRequired is returned when submitting without a run name
	ErrRunNameRequired = errors.New("run name is required to submit")
)

// Mode selects between dry-run gas estimation and real submission
type Mode string

const (
	ModeEstimate Mode = "estimate"
	ModeSubmit   Mode = "submit"
)

// Request describes one invocation of the airdrop routine
type Request struct {
	// Name identifies the checkpoint; required in submit mode
	Name     string
	Snapshot *airdrop.Snapshot
	Options  airdrop.Options
	Mode     Mode
}

// BatchResult is the outcome of one batch
type BatchResult struct {
	Index  int
	Offset int
	Size   int
	Amount *big.Int
	Gas    uint64
	TxHash common.Hash
}

// Result summarises a Run call
type Result struct {
	// Run is nil in estimate mode
	Run      *airdrop.Run
	Plan     *airdrop.Plan
	Batches  []BatchResult
	GasTotal uint64
}

// Status is the persisted state of a run
type Status struct {
	Run     *airdrop.Run
	Batches []*airdrop.BatchRecord
}

// Service runs airdrop plans
type Service interface {
	Run(ctx context.Context, req *Request) (*Result, error)
	Status(ctx context.Context, name string) (*Status, error)
}

type airdropService struct {
	store       store.Store
	distributor Distributor
	logger      *zap.Logger
}

// NewService creates the airdrop service. st may be nil when only estimates are run.
func NewService(st store.Store, distributor Distributor, logger *zap.Logger) Service {
	return &airdropService{
		store:       st,
		distributor: distributor,
		logger:      logger,
	}
}

func (s *airdropService) Run(ctx context.Context, req *Request) (*Result, error) {
	if req.Mode == ModeSubmit {
		return s.submit(ctx, req)
	}
	return s.estimate(ctx, req)
}

func (s *airdropService) estimate(ctx context.Context, req *Request) (*Result, error) {
	plan, err := s.build(req.Snapshot, req.Options)
	if err != nil {
		return nil, err
	}

	res := &Result{Plan: plan}
	for _, b := range plan.Batches {
		gas, err := s.distributor.EstimateAirdrop(ctx, b.Addresses, b.Amounts)
		if err != nil {
			metrics.AirdropBatches.WithLabelValues(string(ModeEstimate), "failed").Inc()
			return res, fmt.Errorf("failed to estimate batch %d at offset %d: %w", b.Index, b.Offset, err)
		}
		metrics.GasEstimated.WithLabelValues("airdrop").Observe(float64(gas))
		metrics.AirdropBatches.WithLabelValues(string(ModeEstimate), "estimated").Inc()

		res.GasTotal += gas
		res.Batches = append(res.Batches, BatchResult{
			Index:  b.Index,
			Offset: b.Offset,
			Size:   b.Size(),
			Amount: b.Total(),
			Gas:    gas,
		})
		s.logger.Info("Batch estimated",
			zap.Int("batch", b.Index),
			zap.Int("offset", b.Offset),
			zap.Int("size", b.Size()),
			zap.Uint64("gas", gas))
	}
	return res, nil
}

func (s *airdropService) submit(ctx context.Context, req *Request) (*Result, error) {
	if s.store == nil {
		return nil, ErrStoreRequired
	}
	if req.Name == "" {
		return nil, ErrRunNameRequired
	}

	// the full filtered sequence fixes Total and guards resumption
	full := req.Options
	full.StartOffset = 0
	fullPlan, err := s.build(req.Snapshot, full)
	if err != nil {
		return nil, err
	}

	run, err := s.loadOrCreateRun(ctx, req, fullPlan.Recipients)
	if err != nil {
		return nil, err
	}

	run, err = s.reconcile(ctx, run)
	if err != nil {
		return nil, err
	}

	offset := max(req.Options.StartOffset, run.NextOffset)
	batches, err := airdrop.Chunk(fullPlan.Recipients, req.Options.MaxBatchSize, offset)
	if err != nil {
		return nil, err
	}
	plan := &airdrop.Plan{Recipients: fullPlan.Recipients, Batches: batches, Dropped: fullPlan.Dropped}

	res := &Result{Run: run, Plan: plan}
	for _, b := range plan.Batches {
		br, err := s.submitBatch(ctx, run, b, req.Options.Decimals)
		if br != nil {
			res.Batches = append(res.Batches, *br)
			res.GasTotal += br.Gas
		}
		if err != nil {
			return res, err
		}
	}

	if err := s.store.CompleteRun(ctx, run.ID); err != nil {
		return res, err
	}
	run.Status = airdrop.RunStatusCompleted
	return res, nil
}

func (s *airdropService) loadOrCreateRun(ctx context.Context, req *Request, recipients []airdrop.Recipient) (*airdrop.Run, error) {
	contract := s.distributor.Contract().Hex()
	hash := req.Snapshot.Hash.Hex()
	planHash := airdrop.PlanHash(recipients).Hex()
	total := len(recipients)

	run, err := s.store.GetRunByName(ctx, req.Name)
	switch {
	case errors.Is(err, store.ErrRunNotFound):
		run = &airdrop.Run{
			Name:         req.Name,
			Contract:     contract,
			SnapshotHash: hash,
			PlanHash:     planHash,
			Total:        total,
			Status:       airdrop.RunStatusRunning,
		}
		if err := s.store.CreateRun(ctx, run); err != nil {
			return nil, err
		}
		s.logger.Info("Airdrop run created",
			zap.String("run", run.Name),
			zap.String("run_id", run.ID.String()),
			zap.Int("recipients", total))
		return run, nil
	case err != nil:
		return nil, err
	}

	if run.SnapshotHash != hash {
		return nil, fmt.Errorf("%w: run %s has %s, got %s", ErrSnapshotMismatch, run.Name, run.SnapshotHash, hash)
	}
	if run.Total != total {
		return nil, fmt.Errorf("%w: run %s has %d recipients, filter now yields %d", ErrSnapshotMismatch, run.Name, run.Total, total)
	}
	if run.PlanHash != planHash {
		return nil, fmt.Errorf("%w: run %s has plan %s, filter options now yield %s", ErrSnapshotMismatch, run.Name, run.PlanHash, planHash)
	}
	if !sameAddress(run.Contract, contract) {
		return nil, fmt.Errorf("%w: run %s targets %s", ErrContractMismatch, run.Name, run.Contract)
	}

	s.logger.Info("Resuming airdrop run",
		zap.String("run", run.Name),
		zap.Int("next_offset", run.NextOffset),
		zap.Int("recipients", run.Total))
	return run, nil
}

// reconcile settles a batch left pending by an interrupted invocation
func (s *airdropService) reconcile(ctx context.Context, run *airdrop.Run) (*airdrop.Run, error) {
	pending, err := s.store.GetPendingBatch(ctx, run.ID)
	if errors.Is(err, store.ErrBatchNotFound) {
		return run, nil
	}
	if err != nil {
		return nil, err
	}

	hash := common.HexToHash(pending.TxHash)
	receipt, err := s.distributor.Receipt(ctx, hash)
	if errors.Is(err, ethereum.ErrReceiptNotFound) {
		nonce, nerr := s.distributor.ConfirmedNonce(ctx)
		if nerr != nil {
			return nil, nerr
		}
		if nonce <= pending.Nonce {
			return nil, fmt.Errorf("%w: %s (nonce %d)", ErrPendingTransaction, pending.TxHash, pending.Nonce)
		}
		// the nonce is spent; look again in case this very transaction spent it after the first lookup
		receipt, err = s.distributor.Receipt(ctx, hash)
	}
	if errors.Is(err, ethereum.ErrReceiptNotFound) {
		s.logger.Warn("Pending batch nonce was used by another transaction, it will be resubmitted",
			zap.Int("offset", pending.Offset),
			zap.Uint64("nonce", pending.Nonce),
			zap.String("tx_hash", pending.TxHash))
		if err := s.store.FailBatch(ctx, pending.ID, "nonce consumed by another transaction"); err != nil {
			return nil, err
		}
		metrics.AirdropBatches.WithLabelValues(string(ModeSubmit), "failed").Inc()
		return s.store.GetRunByName(ctx, run.Name)
	}
	if err != nil {
		return nil, err
	}

	if receipt.Status == types.ReceiptStatusSuccessful {
		s.logger.Info("Pending batch was mined",
			zap.Int("offset", pending.Offset),
			zap.String("tx_hash", pending.TxHash))
		if err := s.store.ConfirmBatch(ctx, pending.ID); err != nil {
			return nil, err
		}
		metrics.AirdropBatches.WithLabelValues(string(ModeSubmit), "confirmed").Inc()
		metrics.AirdropRecipients.Add(float64(pending.Size))
	} else {
		s.logger.Warn("Pending batch reverted, it will be resubmitted",
			zap.Int("offset", pending.Offset),
			zap.String("tx_hash", pending.TxHash))
		if err := s.store.FailBatch(ctx, pending.ID, "transaction reverted"); err != nil {
			return nil, err
		}
		metrics.AirdropBatches.WithLabelValues(string(ModeSubmit), "failed").Inc()
	}

	return s.store.GetRunByName(ctx, run.Name)
}

func (s *airdropService) submitBatch(ctx context.Context, run *airdrop.Run, b airdrop.Batch, decimals int32) (*BatchResult, error) {
	gas, err := s.distributor.EstimateAirdrop(ctx, b.Addresses, b.Amounts)
	if err != nil {
		return nil, fmt.Errorf("failed to estimate batch at offset %d: %w", b.Offset, err)
	}
	metrics.GasEstimated.WithLabelValues("airdrop").Observe(float64(gas))

	tx, err := s.distributor.SignAirdrop(ctx, b.Addresses, b.Amounts)
	if err != nil {
		return nil, fmt.Errorf("failed to sign batch at offset %d: %w", b.Offset, err)
	}

	record := &airdrop.BatchRecord{
		RunID:  run.ID,
		Offset: b.Offset,
		Size:   b.Size(),
		TxHash: tx.Hash().Hex(),
		Nonce:  tx.Nonce(),
	}
	// recorded before broadcast; a crash after this point leaves a pending batch to reconcile
	if err := s.store.RecordBatchSubmitted(ctx, record); err != nil {
		return nil, err
	}

	br := &BatchResult{
		Index:  b.Index,
		Offset: b.Offset,
		Size:   b.Size(),
		Amount: b.Total(),
		Gas:    gas,
		TxHash: tx.Hash(),
	}

	if err := s.distributor.Send(ctx, tx); err != nil {
		if !ethereum.IsRejected(err) {
			// the node may still have the transaction; reconcile settles it by receipt
			metrics.TransactionsSent.WithLabelValues("airdrop", "unknown").Inc()
			s.logger.Warn("Batch broadcast outcome unknown, left pending",
				zap.Int("offset", b.Offset),
				zap.String("tx_hash", record.TxHash),
				zap.Error(err))
			return br, fmt.Errorf("%w: batch at offset %d (%s): %w", ErrPendingTransaction, b.Offset, record.TxHash, err)
		}
		metrics.TransactionsSent.WithLabelValues("airdrop", "failed").Inc()
		if ferr := s.store.FailBatch(ctx, record.ID, err.Error()); ferr != nil {
			s.logger.Error("Failed to record batch failure", zap.Error(ferr))
		}
		return br, fmt.Errorf("batch at offset %d: %w", b.Offset, err)
	}
	metrics.TransactionsSent.WithLabelValues("airdrop", "sent").Inc()

	s.logger.Info("Batch submitted",
		zap.Int("batch", b.Index),
		zap.Int("offset", b.Offset),
		zap.Int("size", b.Size()),
		zap.Uint64("nonce", tx.Nonce()),
		zap.String("tx_hash", record.TxHash))

	start := time.Now()
	receipt, err := s.distributor.WaitMined(ctx, tx.Hash())
	metrics.ReceiptWait.Observe(time.Since(start).Seconds())
	if errors.Is(err, ethereum.ErrTransactionReverted) {
		if ferr := s.store.FailBatch(ctx, record.ID, err.Error()); ferr != nil {
			s.logger.Error("Failed to record batch failure", zap.Error(ferr))
		}
		metrics.AirdropBatches.WithLabelValues(string(ModeSubmit), "failed").Inc()
		return br, fmt.Errorf("batch at offset %d: %w", b.Offset, err)
	}
	if err != nil {
		// left pending; the next invocation reconciles it
		return br, fmt.Errorf("batch at offset %d: %w", b.Offset, err)
	}

	if err := s.store.ConfirmBatch(ctx, record.ID); err != nil {
		return br, err
	}
	run.NextOffset = b.Offset + b.Size()

	metrics.AirdropBatches.WithLabelValues(string(ModeSubmit), "confirmed").Inc()
	metrics.AirdropRecipients.Add(float64(b.Size()))
	metrics.AirdropAmount.Observe(wholeTokens(br.Amount, decimals))

	s.logger.Info("Batch confirmed",
		zap.Int("offset", b.Offset),
		zap.Uint64("gas_used", receipt.GasUsed),
		zap.Uint64("block", receipt.BlockNumber.Uint64()))
	return br, nil
}

func (s *airdropService) Status(ctx context.Context, name string) (*Status, error) {
	if s.store == nil {
		return nil, ErrStoreRequired
	}
	run, err := s.store.GetRunByName(ctx, name)
	if err != nil {
		return nil, err
	}
	batches, err := s.store.ListBatches(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	return &Status{Run: run, Batches: batches}, nil
}

func (s *airdropService) build(snapshot *airdrop.Snapshot, opts airdrop.Options) (*airdrop.Plan, error) {
	plan, err := airdrop.Build(snapshot.Holders, opts)
	if err != nil {
		return nil, err
	}
	for _, d := range plan.Dropped {
		metrics.AirdropDropped.WithLabelValues(string(d.Reason)).Inc()
	}
	s.logger.Info("Airdrop plan built",
		zap.Int("holders", len(snapshot.Holders)),
		zap.Int("recipients", len(plan.Recipients)),
		zap.Int("dropped", len(plan.Dropped)),
		zap.Int("start_offset", opts.StartOffset),
		zap.Int("batches", len(plan.Batches)))
	return plan, nil
}

func wholeTokens(amount *big.Int, decimals int32) float64 {
	f, _ := decimal.NewFromBigInt(amount, -decimals).Float64()
	return f
}

func sameAddress(a, b string) bool {
	return common.HexToAddress(a) == common.HexToAddress(b)
}
