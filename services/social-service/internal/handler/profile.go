package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/devconnector-api/services/social-service/internal/payload"
	"github.com/vasapolrittideah/devconnector-api/services/social-service/internal/usecase"
	"github.com/vasapolrittideah/devconnector-api/shared/utilities"
	"github.com/vasapolrittideah/devconnector-api/shared/validation"
)

const (
	msgNoProfile           = "There is no profile for this user"
	msgProfileNotFound     = "Profile not found"
	msgUserDeleted         = "User deleted"
	msgExperienceNotFound  = "Experience not found"
	msgEducationNotFound   = "Education not found"
	msgGitHubProfileAbsent = "No Github profile found"
)

type profileHTTPHandler struct {
	profileUsecase usecase.ProfileUsecase
	validator      *validation.Validator
	logger         *zerolog.Logger
}

func newProfileHTTPHandler(
	profileUsecase usecase.ProfileUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *profileHTTPHandler {
	return &profileHTTPHandler{
		profileUsecase: profileUsecase,
		validator:      validator,
		logger:         logger,
	}
}

func (h *profileHTTPHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileUsecase.GetMyProfile(r.Context(), userID(r))
	if err != nil {
		if errors.Is(err, usecase.ErrProfileNotFound) {
			utilities.WriteError(w, http.StatusNotFound, msgNoProfile)
			return
		}
		internalError(w, h.logger, err, "failed to get profile")
		return
	}

	utilities.WriteJSON(w, http.StatusOK, profile)
}

func (h *profileHTTPHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	var req payload.ProfileRequest
	if !bind(w, r, h.validator, &req) {
		return
	}

	profile, err := h.profileUsecase.UpsertProfile(r.Context(), userID(r), req.ToParams())
	if err != nil {
		h.writeError(w, err, "failed to upsert profile")
		return
	}

	utilities.WriteJSON(w, http.StatusOK, profile)
}

func (h *profileHTTPHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileUsecase.ListProfiles(r.Context())
	if err != nil {
		internalError(w, h.logger, err, "failed to list profiles")
		return
	}

	utilities.WriteJSON(w, http.StatusOK, profiles)
}

func (h *profileHTTPHandler) GetProfileByUserID(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileUsecase.GetProfileByUserID(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		h.writeError(w, err, "failed to get profile")
		return
	}

	utilities.WriteJSON(w, http.StatusOK, profile)
}

func (h *profileHTTPHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.profileUsecase.DeleteAccount(r.Context(), userID(r)); err != nil {
		h.writeError(w, err, "failed to delete account")
		return
	}

	utilities.WriteJSON(w, http.StatusOK, utilities.MessageResponse{Msg: msgUserDeleted})
}

func (h *profileHTTPHandler) AddExperience(w http.ResponseWriter, r *http.Request) {
	var req payload.ExperienceRequest
	if !bind(w, r, h.validator, &req) {
		return
	}

	entries, errs := req.ToParams()
	if errs != nil {
		utilities.WriteErrors(w, http.StatusBadRequest, errs...)
		return
	}

	profile, err := h.profileUsecase.AddExperience(r.Context(), userID(r), entries)
	if err != nil {
		h.writeError(w, err, "failed to add experience")
		return
	}

	utilities.WriteJSON(w, http.StatusOK, profile)
}

func (h *profileHTTPHandler) RemoveExperience(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileUsecase.RemoveExperience(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err, "failed to remove experience")
		return
	}

	utilities.WriteJSON(w, http.StatusOK, profile)
}

func (h *profileHTTPHandler) AddEducation(w http.ResponseWriter, r *http.Request) {
	var req payload.EducationRequest
	if !bind(w, r, h.validator, &req) {
		return
	}

	entries, errs := req.ToParams()
	if errs != nil {
		utilities.WriteErrors(w, http.StatusBadRequest, errs...)
		return
	}

	profile, err := h.profileUsecase.AddEducation(r.Context(), userID(r), entries)
	if err != nil {
		h.writeError(w, err, "failed to add education")
		return
	}

	utilities.WriteJSON(w, http.StatusOK, profile)
}

func (h *profileHTTPHandler) RemoveEducation(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileUsecase.RemoveEducation(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err, "failed to remove education")
		return
	}

	utilities.WriteJSON(w, http.StatusOK, profile)
}

func (h *profileHTTPHandler) GetGitHubRepositories(w http.ResponseWriter, r *http.Request) {
	repos, err := h.profileUsecase.GetGitHubRepositories(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		h.writeError(w, err, "failed to get github repositories")
		return
	}

	utilities.WriteJSON(w, http.StatusOK, repos)
}

func (h *profileHTTPHandler) writeError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, usecase.ErrProfileNotFound):
		utilities.WriteError(w, http.StatusNotFound, msgProfileNotFound)
	case errors.Is(err, usecase.ErrExperienceNotFound):
		utilities.WriteError(w, http.StatusNotFound, msgExperienceNotFound)
	case errors.Is(err, usecase.ErrEducationNotFound):
		utilities.WriteError(w, http.StatusNotFound, msgEducationNotFound)
	case errors.Is(err, usecase.ErrGitHubProfileNotFound):
		utilities.WriteError(w, http.StatusNotFound, msgGitHubProfileAbsent)
	case errors.Is(err, usecase.ErrUserNotFound):
		utilities.WriteError(w, http.StatusNotFound, msgUserNotFound)
	default:
		internalError(w, h.logger, err, msg)
	}
}
