package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritim-dev/ritim/internal/domain"
	internal_errors "github.com/ritim-dev/ritim/internal/errors"
)

// --- Mocks ---

// MockReactionStorage mocks the ReactionStorage interface.
type MockReactionStorage struct {
	togglePostLikeFunc func(userId domain.UserId, postId domain.PostId) (domain.ToggleResult, error)
	toggleBookmarkFunc func(userId domain.UserId, postId domain.PostId) (domain.ToggleResult, error)
	bookmarksFunc      func(userId domain.UserId) ([]domain.PostId, error)
}

func (m *MockReactionStorage) TogglePostLike(_ context.Context, userId domain.UserId, postId domain.PostId) (domain.ToggleResult, error) {
	if m.togglePostLikeFunc != nil {
		return m.togglePostLikeFunc(userId, postId)
	}
	return domain.ToggleResult{}, nil
}

func (m *MockReactionStorage) ToggleBookmark(_ context.Context, userId domain.UserId, postId domain.PostId) (domain.ToggleResult, error) {
	if m.toggleBookmarkFunc != nil {
		return m.toggleBookmarkFunc(userId, postId)
	}
	return domain.ToggleResult{}, nil
}

func (m *MockReactionStorage) Bookmarks(_ context.Context, userId domain.UserId) ([]domain.PostId, error) {
	if m.bookmarksFunc != nil {
		return m.bookmarksFunc(userId)
	}
	return nil, nil
}

// --- Tests ---

func TestReactionToggleLike(t *testing.T) {
	ctx := context.Background()

	t.Run("returns storage state verbatim", func(t *testing.T) {
		storage := &MockReactionStorage{
			togglePostLikeFunc: func(userId domain.UserId, postId domain.PostId) (domain.ToggleResult, error) {
				assert.Equal(t, "u1", userId)
				assert.Equal(t, "p1", postId)
				return domain.ToggleResult{MemberNow: true, Count: 4}, nil
			},
		}

		result, err := NewReaction(storage).ToggleLike(ctx, "u1", "p1")
		require.NoError(t, err)
		assert.True(t, result.MemberNow)
		assert.Equal(t, 4, result.Count)
	})

	t.Run("missing post passes through", func(t *testing.T) {
		storage := &MockReactionStorage{
			togglePostLikeFunc: func(domain.UserId, domain.PostId) (domain.ToggleResult, error) {
				return domain.ToggleResult{}, internal_errors.NewNotFound("Post not found")
			},
		}

		_, err := NewReaction(storage).ToggleLike(ctx, "u1", "missing")
		assert.True(t, internal_errors.IsNotFound(err))
	})
}

func TestReactionToggleBookmark(t *testing.T) {
	ctx := context.Background()

	t.Run("second toggle reports removal", func(t *testing.T) {
		storage := &MockReactionStorage{
			toggleBookmarkFunc: func(domain.UserId, domain.PostId) (domain.ToggleResult, error) {
				return domain.ToggleResult{MemberNow: false, Count: 0}, nil
			},
		}

		result, err := NewReaction(storage).ToggleBookmark(ctx, "u1", "p1")
		require.NoError(t, err)
		assert.False(t, result.MemberNow)
		assert.Equal(t, 0, result.Count)
	})
}

func TestReactionBookmarks(t *testing.T) {
	storage := &MockReactionStorage{
		bookmarksFunc: func(userId domain.UserId) ([]domain.PostId, error) {
			return []domain.PostId{"p2", "p1"}, nil
		},
	}

	posts, err := NewReaction(storage).Bookmarks(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []domain.PostId{"p2", "p1"}, posts)
}
