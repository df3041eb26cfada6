package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ritim-dev/ritim/internal/api"
	"github.com/ritim-dev/ritim/internal/domain"
	mw "github.com/ritim-dev/ritim/internal/middleware"
	"github.com/ritim-dev/ritim/internal/utils"
)

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	var body api.CreatePostRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	post, err := h.post.Create(r.Context(), domain.PostCreationData{
		Author:   *user,
		Title:    body.Title,
		Content:  body.Content,
		Category: body.Category,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, api.NewPostResponse(post))
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.post.Get(r.Context(), chi.URLParam(r, "post"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.NewPostResponse(post))
}

func (h *Handler) LatestPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.post.Latest(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.NewPostListResponse(posts))
}

func (h *Handler) PopularPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.post.Popular(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.NewPostListResponse(posts))
}

func (h *Handler) PostsByCategory(w http.ResponseWriter, r *http.Request) {
	posts, err := h.post.ByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.NewPostListResponse(posts))
}

func (h *Handler) PostsByAuthor(w http.ResponseWriter, r *http.Request) {
	posts, err := h.post.ByAuthor(r.Context(), chi.URLParam(r, "user"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.NewPostListResponse(posts))
}

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	var body api.CreateCommentRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	comment, err := h.post.CreateComment(r.Context(), *user, chi.URLParam(r, "post"), body.Text)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, api.CommentResponse{
		Id:        comment.Id,
		PostId:    comment.PostId,
		Author:    api.UserResponse{Id: comment.Author.Id, Handle: comment.Author.Handle},
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	})
}

func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.reaction.ToggleLike)
}

func (h *Handler) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.reaction.ToggleBookmark)
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, userId domain.UserId, postId domain.PostId) (domain.ToggleResult, error)) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	result, err := fn(r.Context(), user.Id, chi.URLParam(r, "post"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.ToggleResponse{MemberNow: result.MemberNow, Count: result.Count})
}

func (h *Handler) Bookmarks(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	ids, err := h.reaction.Bookmarks(r.Context(), user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.BookmarkListResponse{PostIds: ids})
}
