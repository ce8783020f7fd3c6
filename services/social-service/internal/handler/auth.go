package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/devconnector-api/services/social-service/internal/payload"
	"github.com/vasapolrittideah/devconnector-api/services/social-service/internal/usecase"
	"github.com/vasapolrittideah/devconnector-api/shared/utilities"
	"github.com/vasapolrittideah/devconnector-api/shared/validation"
)

const (
	msgAlreadyRegistered  = "Hey! You already have an account. Try to Sign in"
	msgInvalidCredentials = "Invalid credentials"
	msgUserNotFound       = "User not found"
)

type authHTTPHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validation.Validator
	logger      *zerolog.Logger
}

func newAuthHTTPHandler(
	authUsecase usecase.AuthUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *authHTTPHandler {
	return &authHTTPHandler{
		authUsecase: authUsecase,
		validator:   validator,
		logger:      logger,
	}
}

func (h *authHTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if !bind(w, r, h.validator, &req) {
		return
	}

	token, err := h.authUsecase.Register(r.Context(), usecase.RegisterParams{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserAlreadyExists):
			utilities.WriteErrors(w, http.StatusBadRequest, validation.FieldError{Msg: msgAlreadyRegistered, Param: "email"})
		default:
			internalError(w, h.logger, err, "failed to register user")
		}
		return
	}

	utilities.WriteJSON(w, http.StatusOK, payload.TokenResponse{JWTToken: token})
}

func (h *authHTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if !bind(w, r, h.validator, &req) {
		return
	}

	token, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			utilities.WriteError(w, http.StatusUnauthorized, msgInvalidCredentials)
		default:
			internalError(w, h.logger, err, "failed to login")
		}
		return
	}

	utilities.WriteJSON(w, http.StatusOK, payload.TokenResponse{JWTToken: token})
}

func (h *authHTTPHandler) GetAuthenticatedUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.authUsecase.GetUser(r.Context(), userID(r))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			utilities.WriteError(w, http.StatusNotFound, msgUserNotFound)
		default:
			internalError(w, h.logger, err, "failed to get user")
		}
		return
	}

	utilities.WriteJSON(w, http.StatusOK, user)
}
