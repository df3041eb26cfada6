package handler

import (
	"net/http"

	"github.com/ritim-dev/ritim/internal/api"
	"github.com/ritim-dev/ritim/internal/domain"
	"github.com/ritim-dev/ritim/internal/utils"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var body api.RegisterRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	user, token, err := h.auth.Register(r.Context(), domain.Credentials{
		Handle:   body.Handle,
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.setAccessCookie(w, token)
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, api.AuthResponse{
		User:  api.UserResponse{Id: user.Id, Handle: user.Handle},
		Token: token,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body api.LoginRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	user, token, err := h.auth.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.setAccessCookie(w, token)
	writeJSON(w, api.AuthResponse{
		User:  api.UserResponse{Id: user.Id, Handle: user.Handle},
		Token: token,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) setAccessCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.JwtTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
