package service

import (
	"context"
	"fmt"
	"os"

	"github.com/bwmarrin/snowflake"
	cascadedomain "github.com/campuslabs/feeflow/internal/cascade/domain"
	"github.com/campuslabs/feeflow/internal/clock"
	"github.com/campuslabs/feeflow/internal/config"
	"github.com/campuslabs/feeflow/internal/importer"
	"github.com/campuslabs/feeflow/internal/metrics"
	masterdomain "github.com/campuslabs/feeflow/internal/masterdata/domain"
	"github.com/campuslabs/feeflow/internal/reconcile/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Cfg      config.Config
	Resolver masterdomain.Resolver
	Cascade  cascadedomain.Service
	Sink     domain.ProgressSink
	Metrics  *metrics.Metrics `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	resolver masterdomain.Resolver
	cascade  cascadedomain.Service
	sink     domain.ProgressSink
	metrics  *metrics.Metrics

	transactional bool
	policy        masterdomain.SelectionPolicy
}

func NewService(p Params) (domain.Service, error) {
	policy, err := masterdomain.ParseSelectionPolicy(p.Cfg.Reconcile.GroupSelection)
	if err != nil {
		return nil, err
	}
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("reconcile.service"),
		genID:         p.GenID,
		clock:         p.Clock,
		resolver:      p.Resolver,
		cascade:       p.Cascade,
		sink:          p.Sink,
		metrics:       p.Metrics,
		transactional: p.Cfg.Reconcile.TransactionalRows,
		policy:        policy,
	}, nil
}

func (s *Service) RunArtifact(ctx context.Context, path string, actorID snowflake.ID, sessionID string) (*domain.BatchResult, error) {
	defer s.releaseArtifact(path)

	rows, err := importer.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parse artifact: %w", err)
	}
	return s.Run(ctx, rows, actorID, sessionID)
}

func (s *Service) Run(ctx context.Context, rows []domain.RowInput, actorID snowflake.ID, sessionID string) (*domain.BatchResult, error) {
	started := s.clock.Now(ctx)

	// One query for the whole batch instead of one per row.
	table, err := s.resolver.LoadCategoryTable(ctx)
	if err != nil {
		s.metrics.IncBatch("aborted")
		return nil, fmt.Errorf("load fee category table: %w", err)
	}

	total := len(rows)
	result := &domain.BatchResult{Total: total}

	s.emitProgress(ctx, sessionID, 0, total)

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			// Cancellation aborts the batch: no partial result is
			// returned, but the session still gets its terminal event.
			s.emitFailed(ctx, sessionID, result.Failed, result.Successful)
			s.metrics.IncBatch("aborted")
			return nil, err
		}

		displayRow := i + 2 // row 1 is the header
		outcome := s.processRow(ctx, table, row, actorID)
		if outcome.reason != "" {
			result.Failed++
			result.Errors = append(result.Errors, domain.RowError{
				Row:      displayRow,
				RowInput: row,
				Reason:   outcome.reason,
			})
			s.metrics.IncRow("failed")
			s.log.Debug("row failed",
				zap.Int("row", displayRow),
				zap.String("uid", row.UID),
				zap.String("reason", outcome.reason))
		} else {
			result.Successful++
			result.Successes = append(result.Successes, domain.RowSuccess{
				Row:            displayRow,
				UID:            row.UID,
				MappingID:      outcome.mappingID,
				MappingCreated: outcome.created,
			})
			s.metrics.IncRow("success")
		}

		s.emitProgress(ctx, sessionID, i+1, total)
	}

	if result.Failed > 0 {
		s.emitFailed(ctx, sessionID, result.Failed, result.Successful)
		s.metrics.IncBatch("failed")
	} else {
		if err := s.sink.OnDone(ctx, sessionID, result.Successful); err != nil {
			s.log.Warn("progress sink rejected terminal event", zap.Error(err))
		}
		s.metrics.IncBatch("done")
	}
	s.metrics.ObserveBatch(s.clock.Now(ctx).Sub(started).Seconds())

	s.log.Info("reconciliation batch finished",
		zap.String("session_id", sessionID),
		zap.Int("total", result.Total),
		zap.Int("successful", result.Successful),
		zap.Int("failed", result.Failed))

	return result, nil
}

func (s *Service) emitProgress(ctx context.Context, sessionID string, processed, total int) {
	err := s.sink.OnProgress(ctx, sessionID, domain.ProgressUpdate{
		Processed: processed,
		Total:     total,
		Percent:   domain.PercentOf(processed, total),
	})
	if err != nil {
		s.log.Warn("progress sink rejected update",
			zap.String("session_id", sessionID),
			zap.Int("processed", processed),
			zap.Error(err))
	}
}

func (s *Service) emitFailed(ctx context.Context, sessionID string, errorCount, successCount int) {
	if err := s.sink.OnFailed(ctx, sessionID, errorCount, successCount); err != nil {
		s.log.Warn("progress sink rejected terminal event", zap.Error(err))
	}
}

func (s *Service) releaseArtifact(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.log.Warn("artifact cleanup failed", zap.String("path", path), zap.Error(err))
	}
}
