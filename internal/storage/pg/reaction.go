package pg

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ritim-dev/ritim/internal/domain"
	internal_errors "github.com/ritim-dev/ritim/internal/errors"
)

// TogglePostLike flips the user's membership in the post's liked-by set and
// recomputes the cached likes count from the set, all in one transaction.
// Incrementing the counter outside the transaction would lose updates under
// concurrent togglers.
func (s *Storage) TogglePostLike(ctx context.Context, userId domain.UserId, postId domain.PostId) (domain.ToggleResult, error) {
	var result domain.ToggleResult
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var exists bool
		err := tx.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)", postId,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check post: %w", err)
		}
		if !exists {
			return internal_errors.NewNotFound("Post not found")
		}

		var member bool
		err = tx.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM post_likes WHERE post_id = $1 AND user_id = $2)",
			postId, userId,
		).Scan(&member)
		if err != nil {
			return fmt.Errorf("failed to check like membership: %w", err)
		}

		if member {
			_, err = tx.ExecContext(ctx,
				"DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2", postId, userId)
		} else {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO post_likes (post_id, user_id, created) VALUES ($1, $2, $3)",
				postId, userId, time.Now().UTC())
		}
		if err != nil {
			return fmt.Errorf("failed to flip like membership: %w", err)
		}

		var count int
		err = tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM post_likes WHERE post_id = $1", postId,
		).Scan(&count)
		if err != nil {
			return fmt.Errorf("failed to recount likes: %w", err)
		}

		if _, err = tx.ExecContext(ctx,
			"UPDATE posts SET likes = $1 WHERE id = $2", count, postId); err != nil {
			return fmt.Errorf("failed to update likes cache: %w", err)
		}

		result = domain.ToggleResult{MemberNow: !member, Count: count}
		return nil
	})
	if err != nil {
		return domain.ToggleResult{}, err
	}
	return result, nil
}

// ToggleBookmark flips the post's membership in the user's bookmark set.
// The returned count is the size of the user's bookmark set after the flip.
func (s *Storage) ToggleBookmark(ctx context.Context, userId domain.UserId, postId domain.PostId) (domain.ToggleResult, error) {
	var result domain.ToggleResult
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var exists bool
		err := tx.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)", postId,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check post: %w", err)
		}
		if !exists {
			return internal_errors.NewNotFound("Post not found")
		}

		var member bool
		err = tx.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM bookmarks WHERE user_id = $1 AND post_id = $2)",
			userId, postId,
		).Scan(&member)
		if err != nil {
			return fmt.Errorf("failed to check bookmark membership: %w", err)
		}

		if member {
			_, err = tx.ExecContext(ctx,
				"DELETE FROM bookmarks WHERE user_id = $1 AND post_id = $2", userId, postId)
		} else {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO bookmarks (user_id, post_id, created) VALUES ($1, $2, $3)",
				userId, postId, time.Now().UTC())
		}
		if err != nil {
			return fmt.Errorf("failed to flip bookmark membership: %w", err)
		}

		var count int
		err = tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM bookmarks WHERE user_id = $1", userId,
		).Scan(&count)
		if err != nil {
			return fmt.Errorf("failed to recount bookmarks: %w", err)
		}

		result = domain.ToggleResult{MemberNow: !member, Count: count}
		return nil
	})
	if err != nil {
		return domain.ToggleResult{}, err
	}
	return result, nil
}

// Bookmarks lists post ids the user bookmarked, newest first.
func (s *Storage) Bookmarks(ctx context.Context, userId domain.UserId) ([]domain.PostId, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT post_id FROM bookmarks WHERE user_id = $1 ORDER BY created DESC", userId)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookmarks: %w", err)
	}
	defer rows.Close()

	var ids []domain.PostId
	for rows.Next() {
		var id domain.PostId
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
