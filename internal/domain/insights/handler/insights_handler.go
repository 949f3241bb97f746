// Package handler exposes the KPI engine over JSON HTTP.
package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alixwilliam/finplan/internal/domain/advisory"
	"github.com/alixwilliam/finplan/internal/domain/dataset"
	"github.com/alixwilliam/finplan/internal/domain/export"
	"github.com/alixwilliam/finplan/internal/domain/insights"
	"github.com/alixwilliam/finplan/internal/domain/ledger"
	"github.com/alixwilliam/finplan/internal/domain/rules"
	"github.com/alixwilliam/finplan/internal/httpx"
)

// ComputeRequest is the ad-hoc KPI request: a raw snapshot, optionally with a
// one-off rules override. Field values arrive as loosely-typed CSV-style
// strings and go through the standard normalization.
type ComputeRequest struct {
	Transactions []ledger.RawTransaction `json:"transactions"`
	Projects     []ledger.RawProject     `json:"projects"`
	Config       *rules.Config           `json:"config,omitempty"`
}

// InsightsHandler handles KPI computation and export endpoints.
type InsightsHandler struct {
	service *insights.Service
	store   *dataset.Store
	logger  *slog.Logger
}

// NewInsightsHandler creates a new insights handler.
func NewInsightsHandler(service *insights.Service, store *dataset.Store, logger *slog.Logger) *InsightsHandler {
	return &InsightsHandler{
		service: service,
		store:   store,
		logger:  logger,
	}
}

// ComputeKPIs handles POST /v1/kpis: compute the full KPI bundle for the
// snapshot in the request body without touching the stored data set.
func (h *InsightsHandler) ComputeKPIs(w http.ResponseWriter, r *http.Request) {
	var req ComputeRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	cfg := h.store.Config()
	if req.Config != nil {
		cfg = *req.Config
	}

	snap := ledger.NormalizeSnapshot(req.Transactions, req.Projects)
	bundle, err := h.service.ComputeKPIs(r.Context(), snap, cfg)
	if err != nil {
		h.writeComputeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, bundle)
}

// GetKPIs handles GET /v1/kpis: compute the KPI bundle for the stored data
// set.
func (h *InsightsHandler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	bundle, err := h.service.ComputeKPIs(r.Context(), h.store.Snapshot(), h.store.Config())
	if err != nil {
		h.writeComputeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, bundle)
}

// GetConfig handles GET /v1/config.
func (h *InsightsHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.store.Config())
}

// UpdateConfig handles PUT /v1/config: replace the active rules
// configuration after validation.
func (h *InsightsHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var cfg rules.Config
	if err := httpx.Decode(r, &cfg); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := cfg.Validate(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.store.SetConfig(cfg)
	httpx.WriteJSON(w, http.StatusOK, cfg)
}

// ExportWorkbook handles GET /v1/export/xlsx: the review workbook for the
// stored data set.
func (h *InsightsHandler) ExportWorkbook(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	cfg := h.store.Config()

	bundle, err := h.service.ComputeKPIs(r.Context(), snap, cfg)
	if err != nil {
		h.writeComputeError(w, r, err)
		return
	}

	cls, err := h.service.ComputeClassification(r.Context(), snap, cfg)
	if err != nil {
		h.writeComputeError(w, r, err)
		return
	}
	advice := advisory.AdviseAll(snap.Projects, cls, cfg)

	filename := fmt.Sprintf("plan-financier-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := export.Workbook(w, bundle, advice); err != nil {
		h.logger.Error("workbook export failed", slog.Any("error", err))
	}
}

// ExportCashflowCSV handles GET /v1/export/csv: the monthly cashflow series.
func (h *InsightsHandler) ExportCashflowCSV(w http.ResponseWriter, r *http.Request) {
	bundle, err := h.service.ComputeKPIs(r.Context(), h.store.Snapshot(), h.store.Config())
	if err != nil {
		h.writeComputeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="cashflow-mensuel.csv"`)
	if err := export.MonthlyCashflowCSV(w, bundle); err != nil {
		h.logger.Error("cashflow export failed", slog.Any("error", err))
	}
}

func (h *InsightsHandler) writeComputeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, rules.ErrInvalidConfig) {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.ErrorContext(r.Context(), "KPI computation failed", slog.Any("error", err))
	httpx.WriteError(w, http.StatusInternalServerError, "internal error")
}
