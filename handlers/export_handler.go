package handlers

import (
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/Dosada05/bowling-tracker/services"
)

type ExportHandler struct {
	exports *services.ExportService
	charts  *services.ChartService
	logger  *slog.Logger
}

func NewExportHandler(exports *services.ExportService, charts *services.ChartService, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{exports: exports, charts: charts, logger: logger}
}

func (h *ExportHandler) Workbook(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	data, err := h.exports.Workbook(r.Context(), user.ID)
	if err != nil {
		logServerError(r, h.logger, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", h.exports.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": "bowling-" + user.Username + ".xlsx",
	}))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

// Archive uploads the workbook to the export bucket.
func (h *ExportHandler) Archive(w http.ResponseWriter, r *http.Request) {
	url, err := h.exports.Archive(r.Context(), currentUser(r).ID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"success": true, "url": url}, nil); err != nil {
		h.logger.Error("failed to write response", slog.Any("error", err))
	}
}

func (h *ExportHandler) Chart(w http.ResponseWriter, r *http.Request) {
	png, err := h.charts.TotalsChart(r.Context(), currentUser(r).ID)
	if err != nil {
		logServerError(r, h.logger, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png)
}
