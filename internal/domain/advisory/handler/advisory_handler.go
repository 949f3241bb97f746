// Package handler exposes the mentor advisory over JSON HTTP.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/alixwilliam/finplan/internal/domain/advisory"
	"github.com/alixwilliam/finplan/internal/domain/dataset"
	"github.com/alixwilliam/finplan/internal/domain/insights"
	"github.com/alixwilliam/finplan/internal/domain/ledger"
	"github.com/alixwilliam/finplan/internal/domain/rules"
	"github.com/alixwilliam/finplan/internal/httpx"
)

// AdviceRequest is the ad-hoc advisory request: projects to judge plus the
// transactions that establish the household's classification state.
type AdviceRequest struct {
	Transactions []ledger.RawTransaction `json:"transactions"`
	Projects     []ledger.RawProject     `json:"projects"`
	Config       *rules.Config           `json:"config,omitempty"`
}

// AdviceResponse carries the per-project advice and the classification it
// was judged against.
type AdviceResponse struct {
	Classification insights.Classification `json:"classification"`
	Advice         []advisory.Advice       `json:"advice"`
}

// AdvisoryHandler handles advisory endpoints.
type AdvisoryHandler struct {
	service *insights.Service
	store   *dataset.Store
	logger  *slog.Logger
}

// NewAdvisoryHandler creates a new advisory handler.
func NewAdvisoryHandler(service *insights.Service, store *dataset.Store, logger *slog.Logger) *AdvisoryHandler {
	return &AdvisoryHandler{
		service: service,
		store:   store,
		logger:  logger,
	}
}

// ComputeAdvice handles POST /v1/advice for a snapshot in the request body.
func (h *AdvisoryHandler) ComputeAdvice(w http.ResponseWriter, r *http.Request) {
	var req AdviceRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	cfg := h.store.Config()
	if req.Config != nil {
		cfg = *req.Config
	}
	snap := ledger.NormalizeSnapshot(req.Transactions, req.Projects)
	h.respond(w, r, snap, cfg)
}

// GetAdvice handles GET /v1/advice for the stored data set.
func (h *AdvisoryHandler) GetAdvice(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.store.Snapshot(), h.store.Config())
}

func (h *AdvisoryHandler) respond(w http.ResponseWriter, r *http.Request, snap ledger.Snapshot, cfg rules.Config) {
	cls, err := h.service.ComputeClassification(r.Context(), snap, cfg)
	if err != nil {
		if errors.Is(err, rules.ErrInvalidConfig) {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.ErrorContext(r.Context(), "advisory computation failed", slog.Any("error", err))
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, AdviceResponse{
		Classification: cls,
		Advice:         advisory.AdviseAll(snap.Projects, cls, cfg),
	})
}
