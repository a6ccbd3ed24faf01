package handlers

import (
	"net/http"
	"time"

	"github.com/dvloznov/commission-fees/internal/api/middleware"
)

// Register mounts the fee endpoints and the health check on mux.
func Register(mux *http.ServeMux, h *FeesHandler) {
	mux.HandleFunc("/api/fees", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			h.ComputeFees(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/fees/file", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			h.ComputeFileFees(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			h.GetConfig(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
}
