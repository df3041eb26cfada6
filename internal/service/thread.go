package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ritim-dev/ritim/internal/config"
	"github.com/ritim-dev/ritim/internal/domain"
	"github.com/ritim-dev/ritim/internal/errors"
	"github.com/ritim-dev/ritim/internal/logger"
	"github.com/ritim-dev/ritim/internal/middleware/metrics"
	service_utils "github.com/ritim-dev/ritim/internal/service/utils"
)

type ChatService interface {
	Send(ctx context.Context, from domain.User, to domain.UserRef, text string) (domain.Message, error)
	ListThreads(ctx context.Context, userId domain.UserId) ([]domain.ThreadSummary, error)
	Thread(ctx context.Context, userId domain.UserId, other domain.UserRef) ([]domain.Message, error)
	MarkThreadRead(ctx context.Context, userId domain.UserId, other domain.UserRef) (int, error)
}

type ChatStorage interface {
	SaveMessage(ctx context.Context, msg domain.Message) error
	MessagesSentBy(ctx context.Context, userId domain.UserId, limit int) ([]domain.Message, error)
	MessagesSentTo(ctx context.Context, userId domain.UserId, limit int) ([]domain.Message, error)
	ThreadMessages(ctx context.Context, key domain.ThreadKey, limit int) ([]domain.Message, error)
	MarkThreadRead(ctx context.Context, key domain.ThreadKey, readerId domain.UserId, limit int) (int, error)
}

// Chat routes two-party messages. A thread has no record of its own: its
// identity is derived from the sorted participant pair, which makes the
// first-contact race between two users a non-problem.
type Chat struct {
	storage  ChatStorage
	identity IdentityService
	notifier Notifier
	cfg      *config.Public
}

func NewChat(storage ChatStorage, identity IdentityService, notifier Notifier, cfg *config.Public) *Chat {
	return &Chat{storage, identity, notifier, cfg}
}

func (c *Chat) Send(ctx context.Context, from domain.User, to domain.UserRef, text string) (domain.Message, error) {
	recipient, err := c.identity.Resolve(ctx, to)
	if err != nil {
		return domain.Message{}, err
	}
	if recipient.Id == from.Id {
		return domain.Message{}, errors.NewConflict("Can't message yourself")
	}

	text = service_utils.CleanText(text, c.cfg.MaxMessageLen)
	if text == "" {
		return domain.Message{}, errors.NewBadRequest("Message text is empty")
	}

	msg := domain.Message{
		Id:        uuid.NewString(),
		ThreadKey: domain.NewThreadKey(from.Id, recipient.Id),
		From:      from.Id,
		To:        recipient.Id,
		Text:      text,
		CreatedAt: time.Now().UTC(),
		Read:      false,
	}
	if err := c.storage.SaveMessage(ctx, msg); err != nil {
		return domain.Message{}, err
	}
	metrics.MessagesSent.Inc()

	// messages are the durable record; the notification is advisory
	err = c.notifier.Emit(ctx, domain.Notification{
		To:        recipient.Id,
		From:      from.Id,
		Kind:      domain.NotificationMessage,
		SubjectId: msg.Id,
	})
	if err != nil {
		logger.Log.Warn("message notification failed", "to", recipient.Id, "error", err)
	}

	return msg, nil
}

// ListThreads merges the caller's two directional message slices into one
// newest-first thread list. Unread counts are computed over the fetched
// window only; unread messages older than the window are not counted, a
// documented bound of the aggregation.
func (c *Chat) ListThreads(ctx context.Context, userId domain.UserId) ([]domain.ThreadSummary, error) {
	sent, err := c.storage.MessagesSentBy(ctx, userId, c.cfg.ThreadWindow)
	if err != nil {
		return nil, err
	}
	received, err := c.storage.MessagesSentTo(ctx, userId, c.cfg.ThreadWindow)
	if err != nil {
		return nil, err
	}

	type threadAgg struct {
		newest domain.Message
		unread int
	}
	threads := make(map[domain.ThreadKey]*threadAgg)

	for _, msg := range append(sent, received...) {
		agg, ok := threads[msg.ThreadKey]
		if !ok {
			agg = &threadAgg{newest: msg}
			threads[msg.ThreadKey] = agg
		} else if msg.CreatedAt.After(agg.newest.CreatedAt) {
			agg.newest = msg
		}
		if msg.To == userId && !msg.Read {
			agg.unread++
		}
	}

	summaries := make([]domain.ThreadSummary, 0, len(threads))
	for _, agg := range threads {
		otherId := agg.newest.From
		if otherId == userId {
			otherId = agg.newest.To
		}

		other, err := c.identity.Resolve(ctx, domain.UserRef{Id: otherId})
		if err != nil {
			logger.Log.Warn("failed to resolve thread participant", "user_id", otherId, "error", err)
			continue
		}

		summaries = append(summaries, domain.ThreadSummary{
			OtherUserId: otherId,
			OtherHandle: other.Handle,
			LastText:    agg.newest.Text,
			LastAt:      agg.newest.CreatedAt,
			UnreadCount: agg.unread,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].LastAt.After(summaries[j].LastAt)
	})
	return summaries, nil
}

// Thread returns the conversation with the other party, oldest first.
func (c *Chat) Thread(ctx context.Context, userId domain.UserId, other domain.UserRef) ([]domain.Message, error) {
	otherUser, err := c.identity.Resolve(ctx, other)
	if err != nil {
		return nil, err
	}
	if otherUser.Id == userId {
		return nil, errors.NewConflict("Can't open a thread with yourself")
	}

	return c.storage.ThreadMessages(ctx, domain.NewThreadKey(userId, otherUser.Id), c.cfg.ThreadWindow)
}

// MarkThreadRead flips unread incoming messages in the thread and returns
// how many were flipped. 0 on an already-read thread is a valid outcome.
func (c *Chat) MarkThreadRead(ctx context.Context, userId domain.UserId, other domain.UserRef) (int, error) {
	otherUser, err := c.identity.Resolve(ctx, other)
	if err != nil {
		return 0, err
	}
	if otherUser.Id == userId {
		return 0, errors.NewConflict("Can't open a thread with yourself")
	}

	return c.storage.MarkThreadRead(ctx, domain.NewThreadKey(userId, otherUser.Id), userId, c.cfg.ThreadWindow)
}
