package service

import (
	"context"
	"regexp"

	"github.com/ritim-dev/ritim/internal/domain"
	"github.com/ritim-dev/ritim/internal/errors"
	"github.com/ritim-dev/ritim/internal/logger"
)

var mentionPattern = regexp.MustCompile(`@([A-Za-z0-9_]+)`)

// ExtractMentions scans free text for @handle tokens and returns the distinct
// handles in order of first appearance.
func ExtractMentions(text string) []domain.Handle {
	matches := mentionPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[domain.Handle]struct{}, len(matches))
	handles := make([]domain.Handle, 0, len(matches))
	for _, match := range matches {
		handle := match[1]
		if _, ok := seen[handle]; ok {
			continue
		}
		seen[handle] = struct{}{}
		handles = append(handles, handle)
	}
	return handles
}

// Notifier delivers advisory notifications. Implementations must tolerate
// being skipped: callers treat delivery as best-effort.
type Notifier interface {
	Emit(ctx context.Context, n domain.Notification) error
}

type Mentions struct {
	identity IdentityService
	notifier Notifier
}

func NewMentions(identity IdentityService, notifier Notifier) *Mentions {
	return &Mentions{identity, notifier}
}

// Fanout resolves every handle mentioned in text and emits one mention
// notification per resolved user. Unresolvable handles are skipped silently:
// free text may name users that don't exist. Fanout never fails the primary
// write, so all errors end up in the log and nowhere else.
func (m *Mentions) Fanout(ctx context.Context, from domain.User, text string, subjectId string) {
	for _, handle := range ExtractMentions(text) {
		user, err := m.identity.Resolve(ctx, domain.UserRef{Handle: handle})
		if err != nil {
			if !errors.IsNotFound(err) {
				logger.Log.Warn("mention resolution failed", "handle", handle, "error", err)
			}
			continue
		}

		err = m.notifier.Emit(ctx, domain.Notification{
			To:        user.Id,
			From:      from.Id,
			Kind:      domain.NotificationMention,
			SubjectId: subjectId,
		})
		if err != nil {
			logger.Log.Warn("mention notification failed", "handle", handle, "error", err)
		}
	}
}
