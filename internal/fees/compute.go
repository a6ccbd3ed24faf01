package fees

import (
	"context"
	"fmt"

	"github.com/dvloznov/commission-fees/internal/domain"
	"github.com/dvloznov/commission-fees/internal/logger"
)

// ComputeAllFees returns one formatted fee per transaction, in input order.
// The weekly groups are built once and shared by every computation.
func ComputeAllFees(
	ctx context.Context,
	txs []domain.Transaction,
	cfg *domain.FeeConfig,
	weeks WeekNumbering,
) ([]string, error) {
	if len(txs) == 0 {
		return nil, fmt.Errorf("ComputeAllFees: %w", domain.ErrInvalidInput)
	}

	log := logger.FromContext(ctx)

	groups := GroupWeekly(txs, weeks)
	log.Debug().
		Int("transactions", len(txs)).
		Int("users", groups.Users()).
		Int("weeks", groups.Weeks()).
		Msg("Built weekly groups")

	result, err := ComputeGrouped(ctx, txs, cfg, groups)
	if err != nil {
		return nil, fmt.Errorf("ComputeAllFees: %w", err)
	}
	return result, nil
}

// ComputeGrouped maps every transaction to its formatted fee using groups
// already built from txs.
func ComputeGrouped(
	ctx context.Context,
	txs []domain.Transaction,
	cfg *domain.FeeConfig,
	groups *WeeklyGroups,
) ([]string, error) {
	calc := NewCalculator(cfg, groups, logger.FromContext(ctx))

	result := make([]string, 0, len(txs))
	for i, tx := range txs {
		fee, err := calc.ComputeFee(tx)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		result = append(result, fee)
	}

	return result, nil
}
