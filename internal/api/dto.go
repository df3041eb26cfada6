package api

import (
	"time"

	"github.com/ritim-dev/ritim/internal/domain"
)

// Request DTOs

type RegisterRequest struct {
	Handle   string `json:"handle" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreatePostRequest struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category,omitempty"`
}

type CreateCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

type CreatePollRequest struct {
	Question string     `json:"question" validate:"required"`
	Options  []string   `json:"options" validate:"required"`
	Multiple bool       `json:"multiple,omitempty"`
	ClosesAt *time.Time `json:"closes_at,omitempty"`
}

type VoteRequest struct {
	OptionId string `json:"option_id" validate:"required"`
}

type SendMessageRequest struct {
	ToUserId string `json:"to_user_id,omitempty"`
	ToHandle string `json:"to_handle,omitempty"`
	Text     string `json:"text" validate:"required"`
}

// Response DTOs

type UserResponse struct {
	Id     domain.UserId `json:"id"`
	Handle domain.Handle `json:"handle"`
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

type ToggleResponse struct {
	MemberNow bool `json:"member_now"`
	Count     int  `json:"count"`
}

type PollOptionResponse struct {
	Id    domain.OptionId `json:"id"`
	Text  string          `json:"text"`
	Votes int             `json:"votes"`
}

type PollResponse struct {
	Id         domain.PollId        `json:"id"`
	PostId     domain.PostId        `json:"post_id"`
	Question   string               `json:"question"`
	Options    []PollOptionResponse `json:"options"`
	TotalVotes int                  `json:"total_votes"`
	Multiple   bool                 `json:"multiple"`
	ClosesAt   *time.Time           `json:"closes_at,omitempty"`
}

func NewPollResponse(poll domain.Poll) PollResponse {
	options := make([]PollOptionResponse, len(poll.Options))
	for i, opt := range poll.Options {
		options[i] = PollOptionResponse{Id: opt.Id, Text: opt.Text, Votes: opt.Votes}
	}
	return PollResponse{
		Id:         poll.Id,
		PostId:     poll.PostId,
		Question:   poll.Question,
		Options:    options,
		TotalVotes: poll.TotalVotes,
		Multiple:   poll.Multiple,
		ClosesAt:   poll.ClosesAt,
	}
}

type CommentResponse struct {
	Id        domain.CommentId `json:"id"`
	PostId    domain.PostId    `json:"post_id"`
	Author    UserResponse     `json:"author"`
	Text      string           `json:"text"`
	CreatedAt time.Time        `json:"created_at"`
}

type PostResponse struct {
	Id        domain.PostId     `json:"id"`
	Author    UserResponse      `json:"author"`
	Title     string            `json:"title"`
	Content   string            `json:"content"`
	Category  string            `json:"category"`
	Likes     int               `json:"likes"`
	CreatedAt time.Time         `json:"created_at"`
	Comments  []CommentResponse `json:"comments,omitempty"`
	Poll      *PollResponse     `json:"poll,omitempty"`
}

func NewPostResponse(post domain.Post) PostResponse {
	resp := PostResponse{
		Id:        post.Id,
		Author:    UserResponse{Id: post.Author.Id, Handle: post.Author.Handle},
		Title:     post.Title,
		Content:   post.Content,
		Category:  post.Category,
		Likes:     post.Likes,
		CreatedAt: post.CreatedAt,
	}
	for _, c := range post.Comments {
		resp.Comments = append(resp.Comments, CommentResponse{
			Id:        c.Id,
			PostId:    c.PostId,
			Author:    UserResponse{Id: c.Author.Id, Handle: c.Author.Handle},
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		})
	}
	if post.Poll != nil {
		poll := NewPollResponse(*post.Poll)
		resp.Poll = &poll
	}
	return resp
}

type PostListResponse struct {
	Posts []PostResponse `json:"posts"`
}

func NewPostListResponse(posts []domain.Post) PostListResponse {
	resp := PostListResponse{Posts: make([]PostResponse, len(posts))}
	for i, p := range posts {
		resp.Posts[i] = NewPostResponse(p)
	}
	return resp
}

type MessageResponse struct {
	Id        domain.MsgId  `json:"id"`
	From      domain.UserId `json:"from"`
	To        domain.UserId `json:"to"`
	Text      string        `json:"text"`
	CreatedAt time.Time     `json:"created_at"`
	Read      bool          `json:"read"`
}

func NewMessageResponse(msg domain.Message) MessageResponse {
	return MessageResponse{
		Id:        msg.Id,
		From:      msg.From,
		To:        msg.To,
		Text:      msg.Text,
		CreatedAt: msg.CreatedAt,
		Read:      msg.Read,
	}
}

type ThreadSummaryResponse struct {
	OtherUserId domain.UserId `json:"other_user_id"`
	OtherHandle domain.Handle `json:"other_handle"`
	LastText    string        `json:"last_text"`
	LastAt      time.Time     `json:"last_at"`
	UnreadCount int           `json:"unread_count"`
}

type ThreadListResponse struct {
	Threads []ThreadSummaryResponse `json:"threads"`
}

type ThreadResponse struct {
	Messages []MessageResponse `json:"messages"`
}

type MarkReadResponse struct {
	Updated int `json:"updated"`
}

type NotificationResponse struct {
	Id         domain.NotificationId `json:"id"`
	From       domain.UserId         `json:"from"`
	FromHandle domain.Handle         `json:"from_handle"`
	Kind       string                `json:"kind"`
	SubjectId  string                `json:"subject_id,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
	Read       bool                  `json:"read"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

type BookmarkListResponse struct {
	PostIds []domain.PostId `json:"post_ids"`
}

type HealthResponse struct {
	Ok   bool      `json:"ok"`
	Time time.Time `json:"time"`
}
