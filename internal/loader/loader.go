package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dvloznov/commission-fees/internal/domain"
	"github.com/dvloznov/commission-fees/internal/gcs"
	"github.com/dvloznov/commission-fees/internal/logger"
)

// Loader reads transaction files from the local filesystem or, for
// "gs://" sources, from cloud storage.
type Loader struct {
	storage gcs.StorageService
}

// New creates a Loader. storage may be nil when only local files are read.
func New(storage gcs.StorageService) *Loader {
	return &Loader{storage: storage}
}

// Load reads and decodes the transactions at source.
func (l *Loader) Load(ctx context.Context, source string) ([]domain.Transaction, error) {
	if source == "" {
		return nil, fmt.Errorf("Load: no source given: %w", domain.ErrInvalidInput)
	}

	data, err := l.read(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}

	txs, err := Decode(source, data)
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}

	log := logger.FromContext(ctx)
	log.Debug().
		Str("source", source).
		Int("bytes", len(data)).
		Int("transactions", len(txs)).
		Msg("Loaded transactions")

	return txs, nil
}

func (l *Loader) read(ctx context.Context, source string) ([]byte, error) {
	if gcs.IsURI(source) {
		if l.storage == nil {
			return nil, fmt.Errorf("read %s: no storage service configured", source)
		}
		return l.storage.FetchFromGCS(ctx, source)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", source, domain.ErrFileNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", source, err)
	}
	return data, nil
}
