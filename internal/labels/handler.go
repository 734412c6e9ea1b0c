// internal/labels/handler.go
package labels

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"siperpus/internal/httpx"
	"siperpus/internal/postgres"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the label endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.handleList)
	r.Post("/generate", h.handleGenerate)
	r.Post("/repair", h.handleRepair)
	r.Post("/print", h.handlePrintBatch)
	r.Get("/{id}", h.handleGet)
	r.Post("/{id}/print", h.handlePrint)
	return r
}

type generateRequest struct {
	BookID   uuid.UUID `json:"book_id" validate:"required"`
	Template string    `json:"template"`
	Size     string    `json:"size"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err)
		return
	}
	label, err := h.service.Generate(r.Context(), req.BookID, Settings{Template: req.Template, Size: req.Size})
	if err != nil {
		httpx.Error(w, statusFor(err), err)
		return
	}
	httpx.JSON(w, http.StatusCreated, label)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, errors.New("invalid label ID"))
		return
	}
	label, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.Error(w, statusFor(err), err)
		return
	}
	httpx.JSON(w, http.StatusOK, label)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	all, err := h.service.List(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err)
		return
	}
	httpx.JSON(w, http.StatusOK, all)
}

func (h *Handler) handlePrint(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, errors.New("invalid label ID"))
		return
	}
	label, err := h.service.Print(r.Context(), id)
	if err != nil {
		httpx.Error(w, statusFor(err), err)
		return
	}
	httpx.JSON(w, http.StatusOK, label)
}

type printBatchRequest struct {
	LabelIDs []uuid.UUID `json:"label_ids" validate:"required,min=1"`
}

func (h *Handler) handlePrintBatch(w http.ResponseWriter, r *http.Request) {
	var req printBatchRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err)
		return
	}
	httpx.JSON(w, http.StatusOK, h.service.PrintBatch(r.Context(), req.LabelIDs))
}

func (h *Handler) handleRepair(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Repair(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, postgres.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, postgres.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
