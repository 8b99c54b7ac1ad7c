package endpoints

import (
	"blackarrow-backend/internal/dto"
	authsvc "blackarrow-backend/internal/service/auth"
	"net/http"
)

type AuthEndpoints interface {
	Login(http.ResponseWriter, *http.Request) error
	Refresh(http.ResponseWriter, *http.Request) error
	Logout(http.ResponseWriter, *http.Request) error
}

type authEndpoints struct {
	service *authsvc.Service
}

func NewAuthEndpoints(service *authsvc.Service) AuthEndpoints {
	return &authEndpoints{service: service}
}

func (h *authEndpoints) Login(w http.ResponseWriter, r *http.Request) error {
	var req dto.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}

	result, err := h.service.Login(r.Context(), authsvc.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return serviceError("admin login", err)
	}

	return WriteJSON(w, http.StatusOK, dto.AuthResponse{
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
		ExpiresAt:    result.Tokens.ExpiresAt,
		User: dto.UserResponse{
			UserID: result.Identity.UserID,
			Email:  result.Identity.Email,
		},
	})
}

func (h *authEndpoints) Refresh(w http.ResponseWriter, r *http.Request) error {
	var req dto.RefreshRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}

	tokens, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		return serviceError("admin refresh", err)
	}
	return WriteJSON(w, http.StatusOK, dto.TokenResponse{AccessToken: tokens.AccessToken, ExpiresAt: tokens.ExpiresAt})
}

func (h *authEndpoints) Logout(w http.ResponseWriter, r *http.Request) error {
	var req dto.RefreshRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}

	if err := h.service.Logout(r.Context(), req.RefreshToken); err != nil {
		return serviceError("admin logout", err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
