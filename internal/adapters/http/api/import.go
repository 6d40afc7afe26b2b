package api

import (
	"net/http"
)

// ImportHandler accepts score sheet CSV uploads.
type ImportHandler struct {
	deps Dependencies
}

// NewImportHandler creates a new import handler.
func NewImportHandler(deps Dependencies) *ImportHandler {
	return &ImportHandler{deps: deps}
}

// HandlePostImport handles POST /import with a CSV body. On success the
// import report is returned and the leaderboards have been recomputed.
func (h *ImportHandler) HandlePostImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	defer r.Body.Close() //nolint:errcheck // read-only body

	report, err := h.deps.ImportCSV(r.Context(), r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "import_failed", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
