package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hitulnayakpara1412/TradingApp/internal/domain/port"
)

type HealthHandler struct {
	repo    port.SymbolRepository
	archive port.CandleArchive
	logger  *slog.Logger
}

func NewHealthHandler(repo port.SymbolRepository, archive port.CandleArchive, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		repo:    repo,
		archive: archive,
		logger:  logger,
	}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	repoStatus := "healthy"
	archiveStatus := "healthy"
	overallStatus := "healthy"

	if err := h.repo.Ping(r.Context()); err != nil {
		repoStatus = "unhealthy"
		overallStatus = "degraded"
		h.logger.Warn("repository health check failed", "error", err)
	}

	if err := h.archive.Ping(r.Context()); err != nil {
		archiveStatus = "unhealthy"
		overallStatus = "degraded"
		h.logger.Warn("archive health check failed", "error", err)
	}

	response := map[string]interface{}{
		"status": overallStatus,
		"checks": map[string]string{
			"repository": repoStatus,
			"archive":    archiveStatus,
		},
	}

	statusCode := http.StatusOK
	if overallStatus == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}
