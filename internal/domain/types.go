package domain

type (
	UserId   = string
	Handle   = string
	Email    = string
	Password = string

	PostId    = string
	CommentId = string

	PollId   = string
	OptionId = string

	MsgId     = string
	ThreadKey = string

	NotificationId = string
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
