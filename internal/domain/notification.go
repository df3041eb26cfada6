package domain

import "time"

const (
	NotificationMention = "mention"
	NotificationMessage = "message"
)

type Notification struct {
	Id         NotificationId
	To         UserId
	From       UserId
	FromHandle Handle
	Kind       string
	SubjectId  string // post, comment or message the notification points at
	CreatedAt  time.Time
	Read       bool
}
