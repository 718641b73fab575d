package book

import (
	"errors"
	"net/http"

	"bookmanager/internal/httpx"
	"bookmanager/internal/openlibrary"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type isbnParam struct {
	ISBN string `validate:"required,isbn"`
}

// GetByISBN handles GET /books/{isbn}: get-or-fetch semantics over the
// ingestion pipeline.
func (h *HTTPHandler) GetByISBN(w http.ResponseWriter, r *http.Request) {
	isbn := r.PathValue("isbn")

	if details := httpx.ValidateStruct(isbnParam{ISBN: isbn}); len(details) > 0 {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "ISBN must be 10 or 13 digits", details)
		return
	}

	record, err := h.service.GetOrFetch(r.Context(), isbn)
	if err != nil {
		writeFetchError(w, err)
		return
	}
	httpx.JSONSuccess(w, record, nil)
}

// writeFetchError maps the pipeline's error taxonomy onto HTTP statuses.
// Author and cover failures never reach here; only the mandatory book
// fetch and normalization do.
func writeFetchError(w http.ResponseWriter, err error) {
	var connErr *openlibrary.ConnectionError
	var webErr *openlibrary.WebRequestError
	switch {
	case errors.Is(err, openlibrary.ErrBookNotFound):
		httpx.JSONError(w, http.StatusNotFound, "BOOK_NOT_FOUND", "Book not found", nil)
	case errors.As(err, &connErr):
		httpx.JSONError(w, http.StatusServiceUnavailable, "UPSTREAM_UNREACHABLE", "Catalog service not reachable", nil)
	case errors.As(err, &webErr), errors.Is(err, ErrMissingISBN):
		httpx.JSONError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Catalog service returned an unusable response", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
