package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ritim-dev/ritim/internal/config"
	"github.com/ritim-dev/ritim/internal/domain"
	"github.com/ritim-dev/ritim/internal/errors"
	service_utils "github.com/ritim-dev/ritim/internal/service/utils"
)

const (
	maxTitleLen    = 200
	maxCategoryLen = 50
	popularLimit   = 5
)

type PostService interface {
	Create(ctx context.Context, data domain.PostCreationData) (domain.Post, error)
	Get(ctx context.Context, id domain.PostId) (domain.Post, error)
	CreateComment(ctx context.Context, author domain.User, postId domain.PostId, text string) (domain.Comment, error)
	Latest(ctx context.Context) ([]domain.Post, error)
	Popular(ctx context.Context) ([]domain.Post, error)
	ByCategory(ctx context.Context, category string) ([]domain.Post, error)
	ByAuthor(ctx context.Context, authorId domain.UserId) ([]domain.Post, error)
}

type PostStorage interface {
	SavePost(ctx context.Context, post domain.Post) error
	GetPost(ctx context.Context, id domain.PostId) (domain.Post, error)
	SaveComment(ctx context.Context, comment domain.Comment) error
	LatestPosts(ctx context.Context, limit int) ([]domain.Post, error)
	PopularPosts(ctx context.Context, limit int) ([]domain.Post, error)
	PostsByCategory(ctx context.Context, category string, limit int) ([]domain.Post, error)
	PostsByAuthor(ctx context.Context, authorId domain.UserId, limit int) ([]domain.Post, error)
}

type Post struct {
	storage  PostStorage
	mentions *Mentions
	cfg      *config.Public
}

func NewPost(storage PostStorage, mentions *Mentions, cfg *config.Public) *Post {
	return &Post{storage, mentions, cfg}
}

func (p *Post) Create(ctx context.Context, data domain.PostCreationData) (domain.Post, error) {
	title := service_utils.CleanText(data.Title, maxTitleLen)
	if title == "" {
		return domain.Post{}, errors.NewBadRequest("Title is empty")
	}
	content := service_utils.CleanText(data.Content, p.cfg.MaxPostLen)
	if content == "" {
		return domain.Post{}, errors.NewBadRequest("Content is empty")
	}

	post := domain.Post{
		Id:        uuid.NewString(),
		Author:    data.Author,
		Title:     title,
		Content:   content,
		Category:  service_utils.CleanText(data.Category, maxCategoryLen),
		CreatedAt: time.Now().UTC(),
	}
	if err := p.storage.SavePost(ctx, post); err != nil {
		return domain.Post{}, err
	}

	// side effect only, the post is already committed
	p.mentions.Fanout(ctx, data.Author, content, post.Id)

	return post, nil
}

func (p *Post) Get(ctx context.Context, id domain.PostId) (domain.Post, error) {
	return p.storage.GetPost(ctx, id)
}

func (p *Post) CreateComment(ctx context.Context, author domain.User, postId domain.PostId, text string) (domain.Comment, error) {
	text = service_utils.CleanText(text, p.cfg.MaxPostLen)
	if text == "" {
		return domain.Comment{}, errors.NewBadRequest("Comment text is empty")
	}

	comment := domain.Comment{
		Id:        uuid.NewString(),
		PostId:    postId,
		Author:    author,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := p.storage.SaveComment(ctx, comment); err != nil {
		return domain.Comment{}, err
	}

	p.mentions.Fanout(ctx, author, text, postId)

	return comment, nil
}

func (p *Post) Latest(ctx context.Context) ([]domain.Post, error) {
	return p.storage.LatestPosts(ctx, p.cfg.FeedPageSize)
}

func (p *Post) Popular(ctx context.Context) ([]domain.Post, error) {
	return p.storage.PopularPosts(ctx, popularLimit)
}

func (p *Post) ByCategory(ctx context.Context, category string) ([]domain.Post, error) {
	return p.storage.PostsByCategory(ctx, category, p.cfg.FeedPageSize)
}

func (p *Post) ByAuthor(ctx context.Context, authorId domain.UserId) ([]domain.Post, error) {
	return p.storage.PostsByAuthor(ctx, authorId, p.cfg.FeedPageSize)
}
