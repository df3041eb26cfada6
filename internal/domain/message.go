package domain

import (
	"strings"
	"time"
)

type Message struct {
	Id        MsgId
	ThreadKey ThreadKey
	From      UserId
	To        UserId
	Text      string
	CreatedAt time.Time
	Read      bool
}

type ThreadSummary struct {
	OtherUserId UserId
	OtherHandle Handle
	LastText    string
	LastAt      time.Time
	UnreadCount int
}

// NewThreadKey derives the canonical identifier of a two-party thread.
// The key is order-independent so both directions land in the same thread.
func NewThreadKey(a, b UserId) ThreadKey {
	if b < a {
		a, b = b, a
	}
	return strings.Join([]string{a, b}, ":")
}
