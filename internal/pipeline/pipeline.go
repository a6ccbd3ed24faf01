package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dvloznov/commission-fees/internal/domain"
	"github.com/dvloznov/commission-fees/internal/fees"
	"github.com/dvloznov/commission-fees/internal/logger"
)

// Dependencies are the collaborators a run needs.
type Dependencies struct {
	Source TransactionSource
	Config ConfigProvider
	// Weeks defaults to ISO weeks when nil.
	Weeks fees.WeekNumbering
}

// ProcessFile computes the fee of every transaction stored at path.
// path may be a local file or a "gs://bucket/object" URI.
func ProcessFile(ctx context.Context, path string, deps Dependencies) ([]string, error) {
	state, err := Run(ctx, path, deps)
	if err != nil {
		return nil, fmt.Errorf("ProcessFile: %w", err)
	}
	return state.Fees, nil
}

// Run executes the fee pipeline once for path and returns the final state,
// so callers can report transactions and fees side by side.
func Run(ctx context.Context, path string, deps Dependencies) (*PipelineState, error) {
	if path == "" {
		return nil, fmt.Errorf("no input file: %w", domain.ErrInvalidInput)
	}
	if deps.Weeks == nil {
		deps.Weeks = fees.ISOWeeks{}
	}

	runID := uuid.New().String()
	log := logger.WithFields(logger.FromContext(ctx), map[string]interface{}{
		"run_id": runID,
		"source": path,
	})
	ctx = logger.WithContext(ctx, log)

	start := time.Now()
	log.Info().Msg("Starting fee computation")

	state := &PipelineState{
		Source: path,
		RunID:  runID,
	}
	if err := NewFeePipeline(deps).Execute(ctx, state); err != nil {
		log.Error().Err(err).Msg("Fee computation failed")
		return nil, err
	}

	log.Info().
		Int("transactions", len(state.Transactions)).
		Dur("duration", time.Since(start)).
		Msg("Fee computation finished")

	return state, nil
}
