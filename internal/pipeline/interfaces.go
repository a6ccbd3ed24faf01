package pipeline

import (
	"context"

	"github.com/dvloznov/commission-fees/internal/domain"
)

// TransactionSource provides an interface for reading a batch of transactions.
// This interface enables mocking of file and cloud storage access in tests.
type TransactionSource interface {
	// Load reads and decodes the transactions stored at source.
	Load(ctx context.Context, source string) ([]domain.Transaction, error)
}

// ConfigProvider provides the fee configuration for a run.
type ConfigProvider interface {
	FetchConfig(ctx context.Context) (*domain.FeeConfig, error)
}
