package domain

import "time"

type Post struct {
	Id        PostId
	Author    User
	Title     string
	Content   string
	Category  string
	Likes     int // derived cache, always equals |post_likes| for this post
	CreatedAt time.Time
	Comments  []Comment
	Poll      *Poll
}

type PostCreationData struct {
	Author   User
	Title    string
	Content  string
	Category string
}

type Comment struct {
	Id        CommentId
	PostId    PostId
	Author    User
	Text      string
	CreatedAt time.Time
}

// ToggleResult is the authoritative post-toggle state.
// Callers must not assume a fixed outcome: repeated calls alternate.
type ToggleResult struct {
	MemberNow bool
	Count     int
}
