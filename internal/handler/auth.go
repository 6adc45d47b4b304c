package handler

import (
	"net/http"

	"github.com/meditactive/meditactive/internal/ctxkeys"
	"github.com/meditactive/meditactive/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.auth.Register(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.auth.GenerateJWT(user)
	if err != nil {
		writeError(w, r, service.Internal("issue token", err))
		return
	}
	h.auth.SetJWTCookie(w, token)

	writeJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.auth.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.auth.GenerateJWT(user)
	if err != nil {
		writeError(w, r, service.Internal("issue token", err))
		return
	}
	h.auth.SetJWTCookie(w, token)

	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.auth.ClearJWTCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me returns the authenticated user, fresh balance included.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	writeJSON(w, http.StatusOK, user)
}
