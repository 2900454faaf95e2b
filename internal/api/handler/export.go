// internal/api/handler/export.go
package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"salapi-backend/internal/service"
	"salapi-backend/internal/util"
)

// ExportHandler serves CSV/PDF exports and the HTML statement view.
type ExportHandler struct {
	exports *service.ExportService
	logger  *slog.Logger
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exports *service.ExportService, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{exports: exports, logger: logger}
}

// exportRange parses the from/to query parameters. all=true selects the full
// history instead.
func exportRange(r *http.Request) (start, end time.Time, all bool, err error) {
	if r.URL.Query().Get("all") == "true" {
		return time.Time{}, time.Time{}, true, nil
	}

	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		return time.Time{}, time.Time{}, false,
			fmt.Errorf("%w: from and to dates are required", util.ErrInvalidInput)
	}
	start, err = parseDate(fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	end, err = parseDate(toStr)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, false,
			fmt.Errorf("%w: to date is before from date", util.ErrInvalidInput)
	}
	return start, end, false, nil
}

func (h *ExportHandler) serveFile(w http.ResponseWriter, r *http.Request, path, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	http.ServeFile(w, r, path)
}

// CSV writes the transactions in the requested range to a CSV file and
// serves it as an attachment.
// GET /export/csv?from=YYYY-MM-DD&to=YYYY-MM-DD  |  GET /export/csv?all=true
func (h *ExportHandler) CSV(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(h.logger, w, r)
	if !ok {
		return
	}

	start, end, all, err := exportRange(r)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	var path string
	if all {
		path, err = h.exports.ExportAllCSV(r.Context(), uid)
	} else {
		path, err = h.exports.ExportCSV(r.Context(), uid, start, end)
	}
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	h.serveFile(w, r, path, "text/csv")
}

// PDF writes the transactions in the requested range to a PDF report and
// serves it as an attachment.
// GET /export/pdf?from=YYYY-MM-DD&to=YYYY-MM-DD  |  GET /export/pdf?all=true
func (h *ExportHandler) PDF(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(h.logger, w, r)
	if !ok {
		return
	}

	start, end, all, err := exportRange(r)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	var path string
	if all {
		path, err = h.exports.ExportAllPDF(r.Context(), uid)
	} else {
		path, err = h.exports.ExportPDF(r.Context(), uid, start, end)
	}
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	h.serveFile(w, r, path, "application/pdf")
}

// Statement renders the range as an HTML report for in-app viewing.
// GET /export/statement?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *ExportHandler) Statement(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(h.logger, w, r)
	if !ok {
		return
	}

	start, end, _, err := exportRange(r)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	html, err := h.exports.StatementHTML(r.Context(), uid, start, end)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// Range reports the user's earliest and latest transaction dates so clients
// can bound their pickers.
// GET /export/range
func (h *ExportHandler) Range(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUID(h.logger, w, r)
	if !ok {
		return
	}

	earliest, latest, has, err := h.exports.DateRange(r.Context(), uid)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	payload := map[string]any{"hasTransactions": has}
	if has {
		payload["earliest"] = earliest.Format("2006-01-02")
		payload["latest"] = latest.Format("2006-01-02")
	}
	respondWithSuccess(h.logger, w, http.StatusOK, "", payload)
}
