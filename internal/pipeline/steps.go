package pipeline

import (
	"context"
	"fmt"

	"github.com/dvloznov/commission-fees/internal/domain"
	"github.com/dvloznov/commission-fees/internal/fees"
	"github.com/dvloznov/commission-fees/internal/logger"
)

// PipelineStep represents a single step in the fee computation pipeline.
type PipelineStep interface {
	Execute(ctx context.Context, state *PipelineState) error
}

// PipelineState holds the shared state across all pipeline steps.
type PipelineState struct {
	Source       string
	RunID        string
	Transactions []domain.Transaction
	Config       *domain.FeeConfig
	Groups       *fees.WeeklyGroups
	Fees         []string
}

// Step 1: LoadTransactionsStep reads the transaction file. An empty batch
// stops the run before any configuration is requested.
type LoadTransactionsStep struct {
	Source TransactionSource
}

func (s *LoadTransactionsStep) Execute(ctx context.Context, state *PipelineState) error {
	txs, err := s.Source.Load(ctx, state.Source)
	if err != nil {
		return err
	}
	if len(txs) == 0 {
		return fmt.Errorf("no transactions in %s: %w", state.Source, domain.ErrInvalidInput)
	}
	state.Transactions = txs
	return nil
}

// Step 2: FetchConfigStep retrieves the fee configuration.
type FetchConfigStep struct {
	Provider ConfigProvider
}

func (s *FetchConfigStep) Execute(ctx context.Context, state *PipelineState) error {
	cfg, err := s.Provider.FetchConfig(ctx)
	if err != nil {
		return err
	}
	state.Config = cfg
	return nil
}

// Step 3: GroupWeeklyStep buckets transactions by user and week.
type GroupWeeklyStep struct {
	Weeks fees.WeekNumbering
}

func (s *GroupWeeklyStep) Execute(ctx context.Context, state *PipelineState) error {
	state.Groups = fees.GroupWeekly(state.Transactions, s.Weeks)
	log := logger.FromContext(ctx)
	log.Debug().
		Int("users", state.Groups.Users()).
		Int("weeks", state.Groups.Weeks()).
		Msg("Built weekly groups")
	return nil
}

// Step 4: ComputeFeesStep computes one fee per transaction, in input order.
type ComputeFeesStep struct{}

func (s *ComputeFeesStep) Execute(ctx context.Context, state *PipelineState) error {
	result, err := fees.ComputeGrouped(ctx, state.Transactions, state.Config, state.Groups)
	if err != nil {
		return err
	}
	state.Fees = result
	return nil
}

// Pipeline executes a sequence of steps in order.
type Pipeline struct {
	steps []PipelineStep
}

// NewPipeline creates a new pipeline with the given steps.
func NewPipeline(steps ...PipelineStep) *Pipeline {
	return &Pipeline{steps: steps}
}

// Execute runs all steps in the pipeline sequentially.
func (p *Pipeline) Execute(ctx context.Context, state *PipelineState) error {
	for i, step := range p.steps {
		if err := step.Execute(ctx, state); err != nil {
			return fmt.Errorf("pipeline step %d failed: %w", i+1, err)
		}
	}
	return nil
}

// NewFeePipeline creates the standard 4-step pipeline for computing fees.
func NewFeePipeline(deps Dependencies) *Pipeline {
	return NewPipeline(
		&LoadTransactionsStep{Source: deps.Source},
		&FetchConfigStep{Provider: deps.Config},
		&GroupWeeklyStep{Weeks: deps.Weeks},
		&ComputeFeesStep{},
	)
}
