// internal/catalog/handler.go
package catalog

import (
	"errors"
	"net/http"
	"time"

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

// Routes mounts the catalog endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.handleList)
	r.Post("/", h.handleAdd)
	r.Get("/resolve", h.handleResolve)
	r.Get("/{id}", h.handleGet)
	r.Put("/{id}", h.handleUpdate)
	r.Patch("/{id}/status", h.handleSetStatus)
	r.Delete("/{id}", h.handleDelete)
	return r
}

type addBookRequest struct {
	Title             string     `json:"title" validate:"required"`
	Author            string     `json:"author" validate:"required"`
	ISBN              string     `json:"isbn"`
	Barcode           string     `json:"barcode" validate:"required"`
	Category          string     `json:"category"`
	SubCategory       string     `json:"sub_category"`
	CallNumber        string     `json:"call_number"`
	Publisher         string     `json:"publisher"`
	PublishedYear     int        `json:"published_year"`
	Language          string     `json:"language"`
	Pages             int        `json:"pages"`
	Description       string     `json:"description"`
	Location          string     `json:"location"`
	AcquiredAt        *time.Time `json:"acquired_at"`
	AcquisitionMethod string     `json:"acquisition_method"`
	Price             float64    `json:"price"`
	Notes             string     `json:"notes"`
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req addBookRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err)
		return
	}

	book, err := h.service.Add(r.Context(), AddInput{
		Title:             req.Title,
		Author:            req.Author,
		ISBN:              req.ISBN,
		Barcode:           req.Barcode,
		Category:          req.Category,
		SubCategory:       req.SubCategory,
		CallNumber:        req.CallNumber,
		Publisher:         req.Publisher,
		PublishedYear:     req.PublishedYear,
		Language:          req.Language,
		Pages:             req.Pages,
		Description:       req.Description,
		Location:          req.Location,
		AcquiredAt:        req.AcquiredAt,
		AcquisitionMethod: req.AcquisitionMethod,
		Price:             req.Price,
		Notes:             req.Notes,
	})
	if err != nil {
		httpx.Error(w, statusFor(err), err)
		return
	}
	httpx.JSON(w, http.StatusCreated, book)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, errors.New("invalid book ID"))
		return
	}
	book, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.Error(w, statusFor(err), err)
		return
	}
	httpx.JSON(w, http.StatusOK, book)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, errors.New("invalid book ID"))
		return
	}
	book, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.Error(w, statusFor(err), err)
		return
	}
	if err := httpx.Decode(r, book); err != nil {
		httpx.Error(w, http.StatusBadRequest, err)
		return
	}
	book.ID = id
	if err := h.service.Update(r.Context(), book); err != nil {
		httpx.Error(w, statusFor(err), err)
		return
	}
	httpx.JSON(w, http.StatusOK, book)
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *Handler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, errors.New("invalid book ID"))
		return
	}
	var req setStatusRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err)
		return
	}
	if err := h.service.SetStatus(r.Context(), id, BookStatus(req.Status)); err != nil {
		httpx.Error(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, errors.New("invalid book ID"))
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.Error(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err)
		return
	}
	httpx.JSON(w, http.StatusOK, books)
}

func (h *Handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.Resolve(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, postgres.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, postgres.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
