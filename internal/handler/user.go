package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/KrrishNichanii/Todo-Backend/internal/auth"
	"github.com/KrrishNichanii/Todo-Backend/internal/handler/dto"
	"github.com/KrrishNichanii/Todo-Backend/internal/service"
)

const (
	accessCookieName  = "accessToken"
	refreshCookieName = "refreshToken"
)

// Register handles new account creation.
// POST /api/users/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	respond(w, http.StatusCreated, dto.ToUserResponse(user), "user registered successfully")
}

// Login verifies credentials, issues tokens and sets them as cookies.
// POST /api/users/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, pair, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.setTokenCookie(w, accessCookieName, pair.AccessToken, int(h.accessTTL.Seconds()))
	h.setTokenCookie(w, refreshCookieName, pair.RefreshToken, int(auth.RefreshTTL.Seconds()))

	respond(w, http.StatusOK, dto.LoginResponse{
		User:         dto.ToUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "user logged in successfully")
}

// Logout invalidates the stored refresh token and expires both cookies.
// POST /api/users/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	if principal == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.users.Logout(r.Context(), principal.ID); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.setTokenCookie(w, accessCookieName, "", -1)
	h.setTokenCookie(w, refreshCookieName, "", -1)

	respond(w, http.StatusOK, nil, "user logged out successfully")
}

// ChangeRole updates the target user's role. Admin only.
// PATCH /api/users/promote/{userId}
func (h *Handler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	if principal == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req dto.ChangeRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	target, err := h.users.ChangeRole(r.Context(), principal, chi.URLParam(r, "userId"), req.Role)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	respond(w, http.StatusOK, dto.RoleChangeResponse{
		ID:   target.ID,
		Role: string(target.Role),
	}, "user role updated successfully")
}

// ToggleActive flips the target user's active flag. Admin only.
// PATCH /api/users/toggle-active/{userId}
func (h *Handler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	if principal == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	target, err := h.users.ToggleActive(r.Context(), principal, chi.URLParam(r, "userId"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	respond(w, http.StatusOK, dto.ActiveToggleResponse{
		ID:       target.ID,
		IsActive: target.IsActive,
	}, "user status updated successfully")
}

// ListUsers returns a page of accounts. Admin only.
// GET /api/users/users?page=&limit=
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	result, err := h.users.ListUsers(r.Context(), page, limit)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	respond(w, http.StatusOK, dto.ToUserListResponse(result), "users fetched successfully")
}

// setTokenCookie writes an httpOnly token cookie. With secure cookies
// enabled SameSite is None so cross-site frontends can send it; local
// development falls back to Lax over plain HTTP.
func (h *Handler) setTokenCookie(w http.ResponseWriter, name, value string, maxAge int) {
	sameSite := http.SameSiteLaxMode
	if h.secureCookies {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: sameSite,
	})
}

// queryInt parses a positive integer query parameter, falling back to
// def for anything absent or unparseable.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
