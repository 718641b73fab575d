package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"bookmanager/internal/auth"
	"bookmanager/internal/httpx"
)

type HTTPHandler struct {
	service  *Service
	secret   string
	tokenTTL time.Duration
}

func NewHTTPHandler(service *Service, secret string, tokenTTL time.Duration) *HTTPHandler {
	return &HTTPHandler{service: service, secret: secret, tokenTTL: tokenTTL}
}

type registerReq struct {
	Username  string `json:"username" validate:"required,min=5,max=20,username_chars"`
	FirstName string `json:"firstname" validate:"required,min=3,max=20,name_chars"`
	LastName  string `json:"lastname" validate:"required,min=3,max=20,name_chars"`
	Password  string `json:"password" validate:"required,min=8"`
}

type loginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateReq struct {
	FirstName string `json:"firstname" validate:"required,min=3,max=20,name_chars"`
	LastName  string `json:"lastname" validate:"required,min=3,max=20,name_chars"`
}

func accountResp(u User) map[string]any {
	return map[string]any{
		"id":        u.ID,
		"username":  u.Username,
		"firstname": u.FirstName,
		"lastname":  u.LastName,
	}
}

// Register handles POST /users
func (h *HTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	newUser, err := h.service.Register(r.Context(), req.Username, req.FirstName, req.LastName, hashedPassword)
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			httpx.JSONError(w, http.StatusConflict, "ALREADY_EXISTS", "Username already exists", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccessCreated(w, accountResp(newUser))
}

// Login handles POST /users/login
func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return
	}

	u, err := h.service.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid username or password", nil)
		return
	}

	token, err := auth.GenerateToken(h.secret, u.Username, h.tokenTTL)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, map[string]any{
		"token":      token,
		"expires_in": int(h.tokenTTL.Seconds()),
	}, nil)
}

// GetByUsername handles GET /users/{username}
func (h *HTTPHandler) GetByUsername(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	u, err := h.service.GetByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, accountResp(u), nil)
}

// Update handles PUT /users/{username}. Accounts can only be updated by
// their owner.
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if httpx.UsernameFrom(r) != username {
		httpx.JSONError(w, http.StatusForbidden, "FORBIDDEN", "Cannot modify another user's account", nil)
		return
	}

	var req updateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return
	}

	u, err := h.service.Update(r.Context(), username, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, accountResp(u), nil)
}

// Delete handles DELETE /users/{username}. Accounts can only be deleted
// by their owner.
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if httpx.UsernameFrom(r) != username {
		httpx.JSONError(w, http.StatusForbidden, "FORBIDDEN", "Cannot modify another user's account", nil)
		return
	}

	err := h.service.Delete(r.Context(), username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccessNoContent(w)
}
