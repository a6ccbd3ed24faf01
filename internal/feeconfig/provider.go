package feeconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dvloznov/commission-fees/internal/domain"
	"github.com/dvloznov/commission-fees/internal/logger"
	"github.com/dvloznov/commission-fees/internal/validator"
)

// Endpoint paths relative to the service base URL.
const (
	CashInPath           = "/config/cash-in"
	CashOutNaturalPath   = "/config/cash-out/natural"
	CashOutJuridicalPath = "/config/cash-out/juridical"
)

// maxDocumentSize caps how much of a response body is read.
const maxDocumentSize = 1 << 20

// HTTPProvider fetches the fee configuration from the remote service.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

// NewHTTPProvider creates a provider for the service at baseURL.
// A nil client gets a default one with the given timeout.
func NewHTTPProvider(baseURL string, client *http.Client, timeout time.Duration) *HTTPProvider {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// FetchConfig issues the three configuration requests concurrently and
// combines them. The first failure cancels the remaining requests.
func (p *HTTPProvider) FetchConfig(ctx context.Context) (*domain.FeeConfig, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	var (
		cashIn    cashInDoc
		natural   naturalDoc
		juridical juridicalDoc
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return p.fetch(gctx, CashInPath, &cashIn) })
	g.Go(func() error { return p.fetch(gctx, CashOutNaturalPath, &natural) })
	g.Go(func() error { return p.fetch(gctx, CashOutJuridicalPath, &juridical) })

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("FetchConfig: %w", err)
	}

	sections := []struct {
		name string
		doc  interface{}
	}{
		{"cash-in", &cashIn},
		{"cash-out/natural", &natural},
		{"cash-out/juridical", &juridical},
	}
	for _, s := range sections {
		failure, err := validator.Struct(s.doc)
		if err != nil {
			return nil, fmt.Errorf("FetchConfig: validate %s: %w", s.name, err)
		}
		if failure != nil {
			return nil, fmt.Errorf("FetchConfig: %w", &domain.ConfigError{
				Section: s.name,
				Field:   failure.Field,
				Rule:    failure.Rule,
			})
		}
	}

	log.Debug().
		Str("base_url", p.baseURL).
		Dur("duration", time.Since(start)).
		Msg("Fetched fee configuration")

	return assemble(&cashIn, &natural, &juridical), nil
}

func (p *HTTPProvider) fetch(ctx context.Context, path string, dst interface{}) error {
	endpoint := p.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &domain.ConfigFetchError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return &domain.ConfigFetchError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.ConfigFetchError{
			Endpoint: endpoint,
			Err:      fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return &domain.ConfigFetchError{Endpoint: endpoint, Err: fmt.Errorf("read body: %w", err)}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return &domain.ConfigFetchError{Endpoint: endpoint, Err: fmt.Errorf("decode body: %w", err)}
	}

	return nil
}
