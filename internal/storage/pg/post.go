package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ritim-dev/ritim/internal/domain"
	internal_errors "github.com/ritim-dev/ritim/internal/errors"
)

func (s *Storage) SavePost(ctx context.Context, post domain.Post) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO posts (id, author_id, title, content, category, created)
        VALUES ($1, $2, $3, $4, $5, $6)
    `, post.Id, post.Author.Id, post.Title, post.Content, post.Category, post.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

func (s *Storage) GetPost(ctx context.Context, id domain.PostId) (domain.Post, error) {
	var post domain.Post
	err := s.db.QueryRowContext(ctx, `
        SELECT p.id, p.title, p.content, p.category, p.likes, p.created,
               u.id, u.handle
        FROM posts p
        JOIN users u ON u.id = p.author_id
        WHERE p.id = $1
    `, id).Scan(
		&post.Id, &post.Title, &post.Content, &post.Category, &post.Likes, &post.CreatedAt,
		&post.Author.Id, &post.Author.Handle,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Post{}, internal_errors.NewNotFound("Post not found")
		}
		return domain.Post{}, fmt.Errorf("failed to fetch post: %w", err)
	}

	comments, err := s.commentsFor(ctx, id)
	if err != nil {
		return domain.Post{}, err
	}
	post.Comments = comments

	poll, err := s.PollByPost(ctx, id)
	if err != nil && !internal_errors.IsNotFound(err) {
		return domain.Post{}, err
	}
	if err == nil {
		post.Poll = &poll
	}

	return post, nil
}

func (s *Storage) commentsFor(ctx context.Context, postId domain.PostId) ([]domain.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT c.id, c.post_id, c.text, c.created, u.id, u.handle
        FROM comments c
        JOIN users u ON u.id = c.author_id
        WHERE c.post_id = $1
        ORDER BY c.created
    `, postId)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.Id, &c.PostId, &c.Text, &c.CreatedAt, &c.Author.Id, &c.Author.Handle); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (s *Storage) SaveComment(ctx context.Context, comment domain.Comment) error {
	result, err := s.db.ExecContext(ctx, `
        INSERT INTO comments (id, post_id, author_id, text, created)
        SELECT $1, $2, $3, $4, $5 WHERE EXISTS (SELECT 1 FROM posts WHERE id = $2)
    `, comment.Id, comment.PostId, comment.Author.Id, comment.Text, comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	if inserted, _ := result.RowsAffected(); inserted == 0 {
		return internal_errors.NewNotFound("Post not found")
	}
	return nil
}

const (
	feedLatest = iota
	feedPopular
	feedByCategory
	feedByAuthor
)

// Posts returns post metadata only (no comments/poll enrichment).
func (s *Storage) posts(ctx context.Context, kind int, arg string, limit int) ([]domain.Post, error) {
	base := `
        SELECT p.id, p.title, p.content, p.category, p.likes, p.created, u.id, u.handle
        FROM posts p
        JOIN users u ON u.id = p.author_id`

	var rows *sql.Rows
	var err error
	switch kind {
	case feedPopular:
		rows, err = s.db.QueryContext(ctx, base+" ORDER BY p.likes DESC, p.created DESC LIMIT $1", limit)
	case feedByCategory:
		rows, err = s.db.QueryContext(ctx, base+" WHERE p.category = $1 ORDER BY p.created DESC LIMIT $2", arg, limit)
	case feedByAuthor:
		rows, err = s.db.QueryContext(ctx, base+" WHERE p.author_id = $1 ORDER BY p.created DESC LIMIT $2", arg, limit)
	default:
		rows, err = s.db.QueryContext(ctx, base+" ORDER BY p.created DESC LIMIT $1", limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.Id, &p.Title, &p.Content, &p.Category, &p.Likes, &p.CreatedAt, &p.Author.Id, &p.Author.Handle); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (s *Storage) LatestPosts(ctx context.Context, limit int) ([]domain.Post, error) {
	return s.posts(ctx, feedLatest, "", limit)
}

func (s *Storage) PopularPosts(ctx context.Context, limit int) ([]domain.Post, error) {
	return s.posts(ctx, feedPopular, "", limit)
}

func (s *Storage) PostsByCategory(ctx context.Context, category string, limit int) ([]domain.Post, error) {
	return s.posts(ctx, feedByCategory, category, limit)
}

func (s *Storage) PostsByAuthor(ctx context.Context, authorId domain.UserId, limit int) ([]domain.Post, error) {
	return s.posts(ctx, feedByAuthor, authorId, limit)
}
