// Package handler exposes the CSV import endpoints.
package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alixwilliam/finplan/internal/domain/dataset"
	importservice "github.com/alixwilliam/finplan/internal/domain/import/service"
	"github.com/alixwilliam/finplan/internal/httpx"
)

const maxUploadBytes = 16 << 20 // 16 MiB

// ImportHandler handles CSV uploads for transactions and projects.
type ImportHandler struct {
	importSvc *importservice.ImportService
	store     *dataset.Store
	logger    *slog.Logger
}

// NewImportHandler creates a new import handler.
func NewImportHandler(importSvc *importservice.ImportService, store *dataset.Store, logger *slog.Logger) *ImportHandler {
	return &ImportHandler{
		importSvc: importSvc,
		store:     store,
		logger:    logger,
	}
}

// ImportTransactions handles POST /v1/import/transactions. The CSV comes as
// a multipart "file" field or as the raw request body. A successful import
// replaces the stored transaction ledger.
func (h *ImportHandler) ImportTransactions(w http.ResponseWriter, r *http.Request) {
	body, cleanup, err := h.uploadBody(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer cleanup()

	txs, result, err := h.importSvc.ImportTransactions(r.Context(), body)
	if err != nil {
		h.logger.Error("transaction import failed", slog.Any("error", err))
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.store.ReplaceTransactions(txs)
	httpx.WriteJSON(w, http.StatusOK, result)
}

// ImportProjects handles POST /v1/import/projects.
func (h *ImportHandler) ImportProjects(w http.ResponseWriter, r *http.Request) {
	body, cleanup, err := h.uploadBody(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer cleanup()

	projects, result, err := h.importSvc.ImportProjects(r.Context(), body)
	if err != nil {
		h.logger.Error("project import failed", slog.Any("error", err))
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.store.ReplaceProjects(projects)
	httpx.WriteJSON(w, http.StatusOK, result)
}

// uploadBody extracts the CSV payload: the multipart "file" part when
// present, the raw body otherwise.
func (h *ImportHandler) uploadBody(r *http.Request) (io.Reader, func(), error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxUploadBytes)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, nil, err
		}
		return file, func() { file.Close() }, nil
	}
	return r.Body, func() {}, nil
}
