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
	msgPostNotFound    = "Post not found"
	msgNotAuthorized   = "User not authorized"
	msgAlreadyLiked    = "Post already liked"
	msgNotLiked        = "Post has not yet been liked"
	msgCommentNotFound = "Comment does not exist"
	msgPostRemoved     = "Post removed"
)

type postHTTPHandler struct {
	postUsecase usecase.PostUsecase
	validator   *validation.Validator
	logger      *zerolog.Logger
}

func newPostHTTPHandler(
	postUsecase usecase.PostUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *postHTTPHandler {
	return &postHTTPHandler{
		postUsecase: postUsecase,
		validator:   validator,
		logger:      logger,
	}
}

func (h *postHTTPHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req payload.PostRequest
	if !bind(w, r, h.validator, &req) {
		return
	}

	post, err := h.postUsecase.CreatePost(r.Context(), userID(r), req.Text)
	if err != nil {
		h.writeError(w, err, "failed to create post")
		return
	}

	utilities.WriteJSON(w, http.StatusOK, post)
}

func (h *postHTTPHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postUsecase.ListPosts(r.Context())
	if err != nil {
		h.writeError(w, err, "failed to list posts")
		return
	}

	utilities.WriteJSON(w, http.StatusOK, posts)
}

func (h *postHTTPHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.postUsecase.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err, "failed to get post")
		return
	}

	utilities.WriteJSON(w, http.StatusOK, post)
}

func (h *postHTTPHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.postUsecase.DeletePost(r.Context(), userID(r), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err, "failed to delete post")
		return
	}

	utilities.WriteJSON(w, http.StatusOK, utilities.MessageResponse{Msg: msgPostRemoved})
}

func (h *postHTTPHandler) LikePost(w http.ResponseWriter, r *http.Request) {
	likes, err := h.postUsecase.LikePost(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err, "failed to like post")
		return
	}

	utilities.WriteJSON(w, http.StatusOK, likes)
}

func (h *postHTTPHandler) UnlikePost(w http.ResponseWriter, r *http.Request) {
	likes, err := h.postUsecase.UnlikePost(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err, "failed to unlike post")
		return
	}

	utilities.WriteJSON(w, http.StatusOK, likes)
}

func (h *postHTTPHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req payload.CommentRequest
	if !bind(w, r, h.validator, &req) {
		return
	}

	comments, err := h.postUsecase.AddComment(r.Context(), userID(r), chi.URLParam(r, "id"), req.Text)
	if err != nil {
		h.writeError(w, err, "failed to add comment")
		return
	}

	utilities.WriteJSON(w, http.StatusOK, comments)
}

func (h *postHTTPHandler) RemoveComment(w http.ResponseWriter, r *http.Request) {
	comments, err := h.postUsecase.RemoveComment(
		r.Context(),
		userID(r),
		chi.URLParam(r, "id"),
		chi.URLParam(r, "commentID"),
	)
	if err != nil {
		h.writeError(w, err, "failed to remove comment")
		return
	}

	utilities.WriteJSON(w, http.StatusOK, comments)
}

func (h *postHTTPHandler) writeError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, usecase.ErrPostNotFound):
		utilities.WriteError(w, http.StatusNotFound, msgPostNotFound)
	case errors.Is(err, usecase.ErrNotAuthorized):
		utilities.WriteError(w, http.StatusUnauthorized, msgNotAuthorized)
	case errors.Is(err, usecase.ErrAlreadyLiked):
		utilities.WriteError(w, http.StatusBadRequest, msgAlreadyLiked)
	case errors.Is(err, usecase.ErrNotLiked):
		utilities.WriteError(w, http.StatusBadRequest, msgNotLiked)
	case errors.Is(err, usecase.ErrCommentNotFound):
		utilities.WriteError(w, http.StatusNotFound, msgCommentNotFound)
	case errors.Is(err, usecase.ErrUserNotFound):
		utilities.WriteError(w, http.StatusNotFound, msgUserNotFound)
	default:
		internalError(w, h.logger, err, msg)
	}
}
