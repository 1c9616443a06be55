package api

import (
	"io"
	"net/http"
	"time"
)

// ── Handlers ────────────────────────────────────────────────────────────────

// exportData downloads a backup of all stored data.
// @Summary      Export stored data
// @Description  Produces a full JSON backup, or a CSV of session rows with format=csv.
// @Tags         Backup
// @Produce      json
// @Param        format  query  string  false  "json (default) or csv"
// @Success      200
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /export [get]
func (h *Handler) exportData(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	timestamp := time.Now().UTC().Format("2006-01-02")

	switch format {
	case "json":
		content, err := h.export.ExportJSON()
		if err != nil {
			h.logger.Error("export failed", "error", err)
			respondError(w, http.StatusInternalServerError, "export failed")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", "attachment; filename=rocklingo-export-"+timestamp+".json")
		w.Write(content)

	case "csv":
		content, err := h.export.ExportCSV()
		if err != nil {
			h.logger.Error("export failed", "error", err)
			respondError(w, http.StatusInternalServerError, "export failed")
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=rocklingo-sessions-"+timestamp+".csv")
		w.Write(content)

	default:
		respondError(w, http.StatusBadRequest, "format must be json or csv")
	}
}

// importData restores stored data from a backup file.
// @Summary      Import a backup
// @Description  Validates the uploaded export document. Errors abort the import; the response always carries the full error and warning lists.
// @Tags         Backup
// @Accept       json
// @Produce      json
// @Success      200  {object}  service.ImportResult
// @Failure      500  {object}  map[string]string
// @Router       /import [post]
func (h *Handler) importData(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	result, err := h.export.Import(raw)
	if err != nil {
		h.logger.Error("import failed", "error", err)
		respondError(w, http.StatusInternalServerError, "import failed")
		return
	}
	respondJSON(w, http.StatusOK, result)
}
