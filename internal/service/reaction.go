package service

import (
	"context"

	"github.com/ritim-dev/ritim/internal/domain"
	"github.com/ritim-dev/ritim/internal/middleware/metrics"
)

type ReactionService interface {
	ToggleLike(ctx context.Context, userId domain.UserId, postId domain.PostId) (domain.ToggleResult, error)
	ToggleBookmark(ctx context.Context, userId domain.UserId, postId domain.PostId) (domain.ToggleResult, error)
	Bookmarks(ctx context.Context, userId domain.UserId) ([]domain.PostId, error)
}

type ReactionStorage interface {
	TogglePostLike(ctx context.Context, userId domain.UserId, postId domain.PostId) (domain.ToggleResult, error)
	ToggleBookmark(ctx context.Context, userId domain.UserId, postId domain.PostId) (domain.ToggleResult, error)
	Bookmarks(ctx context.Context, userId domain.UserId) ([]domain.PostId, error)
}

// Reaction is the idempotent set-membership toggle engine. Each call flips
// membership; the returned state is authoritative, callers must not assume
// a fixed outcome under retry.
type Reaction struct {
	storage ReactionStorage
}

func NewReaction(storage ReactionStorage) *Reaction {
	return &Reaction{storage}
}

func (r *Reaction) ToggleLike(ctx context.Context, userId domain.UserId, postId domain.PostId) (domain.ToggleResult, error) {
	result, err := r.storage.TogglePostLike(ctx, userId, postId)
	if err != nil {
		return domain.ToggleResult{}, err
	}
	metrics.ReactionToggles.WithLabelValues("like").Inc()
	return result, nil
}

func (r *Reaction) ToggleBookmark(ctx context.Context, userId domain.UserId, postId domain.PostId) (domain.ToggleResult, error) {
	result, err := r.storage.ToggleBookmark(ctx, userId, postId)
	if err != nil {
		return domain.ToggleResult{}, err
	}
	metrics.ReactionToggles.WithLabelValues("bookmark").Inc()
	return result, nil
}

func (r *Reaction) Bookmarks(ctx context.Context, userId domain.UserId) ([]domain.PostId, error) {
	return r.storage.Bookmarks(ctx, userId)
}
