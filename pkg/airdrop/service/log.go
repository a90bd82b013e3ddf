package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const serviceName = "AirdropService"

// logService wraps Service with logging of every method call
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the airdrop Service.
// It logs method entry, completion with duration, and failures.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

// Run wraps the service method with logging
func (ls *logService) Run(ctx context.Context, req *Request) (res *Result, err error) {
	start := time.Now()

	ls.logger.Info("Run started",
		zap.String("service", serviceName),
		zap.String("method", "Run"),
		zap.String("run", req.Name),
		zap.String("mode", string(req.Mode)),
		zap.Int("start_offset", req.Options.StartOffset),
		zap.Int("max_batch_size", req.Options.MaxBatchSize),
	)

	defer func() {
		duration := time.Since(start)
		batches := 0
		var gas uint64
		if res != nil {
			batches = len(res.Batches)
			gas = res.GasTotal
		}

		if err != nil {
			ls.logger.Error("Run failed",
				zap.String("service", serviceName),
				zap.String("method", "Run"),
				zap.String("run", req.Name),
				zap.Int("batches_done", batches),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
			return
		}
		ls.logger.Info("Run completed",
			zap.String("service", serviceName),
			zap.String("method", "Run"),
			zap.String("run", req.Name),
			zap.Int("batches", batches),
			zap.Uint64("gas_total", gas),
			zap.Duration("duration", duration),
		)
	}()

	return ls.svc.Run(ctx, req)
}

// Status wraps the service method with logging
func (ls *logService) Status(ctx context.Context, name string) (st *Status, err error) {
	start := time.Now()

	defer func() {
		if err != nil {
			ls.logger.Error("Status failed",
				zap.String("service", serviceName),
				zap.String("method", "Status"),
				zap.String("run", name),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err),
			)
			return
		}
		ls.logger.Debug("Status completed",
			zap.String("service", serviceName),
			zap.String("method", "Status"),
			zap.String("run", name),
			zap.Int("next_offset", st.Run.NextOffset),
			zap.Duration("duration", time.Since(start)),
		)
	}()

	return ls.svc.Status(ctx, name)
}
