// internal/circulation/handler.go
package circulation

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

// Routes mounts the circulation endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/borrow", h.handleBorrow)
	r.Post("/return", h.handleReturn)
	r.Post("/renew", h.handleRenew)
	r.Post("/lost", h.handleMarkLost)
	r.Post("/bulk/return", h.handleBulkReturn)
	r.Post("/bulk/extend", h.handleBulkExtend)
	r.Get("/active", h.handleListActive)
	r.Get("/active/{memberID}", h.handleListActiveByMember)
	r.Get("/history/{memberID}", h.handleHistory)
	return r
}

type borrowRequest struct {
	MemberID      uuid.UUID `json:"member_id" validate:"required"`
	BookID        uuid.UUID `json:"book_id" validate:"required"`
	AllowReserved bool      `json:"allow_reserved"`
}

func (h *Handler) handleBorrow(w http.ResponseWriter, r *http.Request) {
	var req borrowRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err)
		return
	}

	ab, err := h.service.Borrow(r.Context(), BorrowInput{
		MemberID:      req.MemberID,
		BookID:        req.BookID,
		AllowReserved: req.AllowReserved,
	})
	if err != nil {
		httpx.Error(w, statusFor(err), err)
		return
	}
	httpx.JSON(w, http.StatusCreated, ab)
}

type borrowingIDRequest struct {
	BorrowingID uuid.UUID `json:"borrowing_id" validate:"required"`
}

func (h *Handler) handleReturn(w http.ResponseWriter, r *http.Request) {
	var req borrowingIDRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err)
		return
	}
	if err := h.service.Return(r.Context(), req.BorrowingID); err != nil {
		httpx.Error(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleRenew(w http.ResponseWriter, r *http.Request) {
	var req borrowingIDRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err)
		return
	}
	ab, err := h.service.Renew(r.Context(), req.BorrowingID)
	if err != nil {
		httpx.Error(w, statusFor(err), err)
		return
	}
	httpx.JSON(w, http.StatusOK, ab)
}

func (h *Handler) handleMarkLost(w http.ResponseWriter, r *http.Request) {
	var req borrowingIDRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err)
		return
	}
	if err := h.service.MarkLost(r.Context(), req.BorrowingID); err != nil {
		httpx.Error(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type bulkRequest struct {
	BorrowingIDs []uuid.UUID `json:"borrowing_ids" validate:"required,min=1"`
}

func (h *Handler) handleBulkReturn(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err)
		return
	}
	httpx.JSON(w, http.StatusOK, h.service.BulkReturn(r.Context(), req.BorrowingIDs))
}

func (h *Handler) handleBulkExtend(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err)
		return
	}
	httpx.JSON(w, http.StatusOK, h.service.BulkExtend(r.Context(), req.BorrowingIDs))
}

func (h *Handler) handleListActive(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ListActive(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err)
		return
	}
	httpx.JSON(w, http.StatusOK, views)
}

func (h *Handler) handleListActiveByMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := uuid.Parse(chi.URLParam(r, "memberID"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, errors.New("invalid member ID"))
		return
	}
	views, err := h.service.ListActiveByMember(r.Context(), memberID)
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err)
		return
	}
	httpx.JSON(w, http.StatusOK, views)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	memberID, err := uuid.Parse(chi.URLParam(r, "memberID"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, errors.New("invalid member ID"))
		return
	}
	records, err := h.service.History(r.Context(), memberID)
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err)
		return
	}
	httpx.JSON(w, http.StatusOK, records)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrMemberNotEligible),
		errors.Is(err, ErrBookUnavailable),
		errors.Is(err, ErrBorrowLimitReached),
		errors.Is(err, ErrRenewalLimitReached):
		return http.StatusConflict
	case errors.Is(err, postgres.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
