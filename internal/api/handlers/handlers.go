package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dvloznov/commission-fees/internal/api/middleware"
	"github.com/dvloznov/commission-fees/internal/domain"
	"github.com/dvloznov/commission-fees/internal/fees"
	"github.com/dvloznov/commission-fees/internal/gcs"
	"github.com/dvloznov/commission-fees/internal/loader"
	"github.com/dvloznov/commission-fees/internal/pipeline"
)

// maxBatchSize caps the size of a transaction batch posted inline.
const maxBatchSize = 10 << 20

// FeesResponse is the body returned by the fee endpoints.
type FeesResponse struct {
	RequestID string   `json:"request_id,omitempty"`
	Fees      []string `json:"fees"`
	Count     int      `json:"count"`
}

// FeesHandler handles fee computation endpoints.
type FeesHandler struct {
	deps    pipeline.Dependencies
	log     zerolog.Logger
	maxBody int64
}

// NewFeesHandler creates a new fees handler.
func NewFeesHandler(deps pipeline.Dependencies, log zerolog.Logger) *FeesHandler {
	if deps.Weeks == nil {
		deps.Weeks = fees.ISOWeeks{}
	}
	return &FeesHandler{
		deps:    deps,
		log:     log,
		maxBody: maxBatchSize,
	}
}

// ComputeFees handles POST /api/fees with a JSON array of transactions as body.
func (h *FeesHandler) ComputeFees(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.WriteError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		middleware.WriteError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	txs, err := loader.Decode("request body", body)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	if len(txs) == 0 {
		h.writeFailure(w, r, domain.ErrInvalidInput)
		return
	}

	cfg, err := h.deps.Config.FetchConfig(ctx)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}

	result, err := fees.ComputeAllFees(ctx, txs, cfg, h.deps.Weeks)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, FeesResponse{
		RequestID: middleware.RequestIDFromContext(ctx),
		Fees:      result,
		Count:     len(result),
	})
}

// ComputeFileFees handles POST /api/fees/file with {"source": "..."}.
// Only gs:// sources are accepted; the server never reads local paths
// on behalf of a client.
func (h *FeesHandler) ComputeFileFees(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Source string `json:"source"`
	}

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBody)).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Source == "" {
		middleware.WriteError(w, http.StatusBadRequest, "source is required")
		return
	}
	if !gcs.IsURI(req.Source) {
		middleware.WriteError(w, http.StatusBadRequest, "source must be a gs:// URI")
		return
	}

	result, err := pipeline.ProcessFile(r.Context(), req.Source, h.deps)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, FeesResponse{
		RequestID: middleware.RequestIDFromContext(r.Context()),
		Fees:      result,
		Count:     len(result),
	})
}

// GetConfig handles GET /api/config
func (h *FeesHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.deps.Config.FetchConfig(r.Context())
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, cfg)
}

func (h *FeesHandler) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)

	log := h.log.With().Str("request_id", middleware.RequestIDFromContext(r.Context())).Logger()
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Msg("Fee request failed")
	} else {
		log.Warn().Err(err).Int("status", status).Msg("Fee request rejected")
	}

	middleware.WriteError(w, status, err.Error())
}

// StatusFor maps a domain error to an HTTP status code.
func StatusFor(err error) int {
	var (
		parseErr      *domain.ParseError
		validationErr *domain.ValidationError
		fetchErr      *domain.ConfigFetchError
		configErr     *domain.ConfigError
	)

	switch {
	case errors.Is(err, domain.ErrFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput),
		errors.As(err, &parseErr),
		errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &fetchErr), errors.As(err, &configErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
