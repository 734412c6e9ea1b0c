// internal/spreadsheet/handler.go
package spreadsheet

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"siperpus/internal/catalog"
	"siperpus/internal/httpx"
)

type Handler struct {
	books catalog.Service
}

func NewHandler(books catalog.Service) *Handler {
	return &Handler{books: books}
}

// Routes mounts the import/export endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/export", h.handleExport)
	r.Post("/import", h.handleImport)
	return r
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	books, err := h.books.List(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="katalog-buku.csv"`)
	if err := WriteCSV(w, ExportTable(books)); err != nil {
		// Headers are gone by now; nothing to do but log via the
		// middleware chain. The client sees a truncated file.
		return
	}
}

type importRequest struct {
	// Mapping overrides the default column-letter mapping.
	Mapping ColumnMapping `json:"mapping"`
	Rows    [][]string    `json:"rows" validate:"required,min=1"`
}

type importRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type importResult struct {
	Imported int              `json:"imported"`
	Failed   int              `json:"failed"`
	Errors   []importRowError `json:"errors,omitempty"`
}

// handleImport catalogs each row independently, best-effort: a bad row is
// reported and skipped, good rows stand.
func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err)
		return
	}
	mapping := req.Mapping
	if len(mapping) == 0 {
		mapping = DefaultImportMapping()
	}

	res := importResult{}
	for i, row := range req.Rows {
		in, err := ParseBookRow(mapping, row)
		if err == nil {
			_, err = h.books.Add(r.Context(), in)
		}
		if err != nil {
			res.Failed++
			res.Errors = append(res.Errors, importRowError{Row: i + 1, Message: fmt.Sprintf("%v", err)})
			continue
		}
		res.Imported++
	}
	httpx.JSON(w, http.StatusOK, res)
}
