package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritim-dev/ritim/internal/domain"
	internal_errors "github.com/ritim-dev/ritim/internal/errors"
)

// --- Mocks ---

// MockNotifier mocks the Notifier interface and records emitted notifications.
type MockNotifier struct {
	emitFunc func(n domain.Notification) error

	mu      sync.Mutex
	emitted []domain.Notification
}

func (m *MockNotifier) Emit(_ context.Context, n domain.Notification) error {
	m.mu.Lock()
	m.emitted = append(m.emitted, n)
	m.mu.Unlock()

	if m.emitFunc != nil {
		return m.emitFunc(n)
	}
	return nil
}

func (m *MockNotifier) Emitted() []domain.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Notification(nil), m.emitted...)
}

// --- Tests ---

func TestExtractMentions(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []domain.Handle
	}{
		{"no mentions", "plain text", nil},
		{"single mention", "hello @bob", []domain.Handle{"bob"}},
		{"multiple mentions", "@alice meet @bob", []domain.Handle{"alice", "bob"}},
		{"duplicates collapsed", "@bob @bob @bob", []domain.Handle{"bob"}},
		{"underscores and digits", "ping @user_42", []domain.Handle{"user_42"}},
		{"punctuation terminates handle", "thanks @bob!", []domain.Handle{"bob"}},
		{"mid word at sign", "mail me at a@b.com", []domain.Handle{"b"}},
		{"empty text", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMentions(tt.text))
		})
	}
}

func TestMentionsFanout(t *testing.T) {
	ctx := context.Background()
	author := domain.User{Id: "u-alice", Handle: "alice"}

	knownUsers := map[domain.Handle]domain.User{
		"bob":  {Id: "u-bob", Handle: "bob"},
		"carl": {Id: "u-carl", Handle: "carl"},
	}
	identity := NewIdentity(&MockIdentityStorage{
		userByHandleFunc: func(handle domain.Handle) (domain.User, error) {
			if user, ok := knownUsers[handle]; ok {
				return user, nil
			}
			return domain.User{}, internal_errors.NewNotFound("User not found")
		},
	})

	t.Run("resolved handles get one notification each", func(t *testing.T) {
		notifier := &MockNotifier{}
		NewMentions(identity, notifier).Fanout(ctx, author, "hey @bob and @carl", "post-1")

		emitted := notifier.Emitted()
		require.Len(t, emitted, 2)
		assert.Equal(t, "u-bob", emitted[0].To)
		assert.Equal(t, "u-carl", emitted[1].To)
		for _, n := range emitted {
			assert.Equal(t, domain.NotificationMention, n.Kind)
			assert.Equal(t, "u-alice", n.From)
			assert.Equal(t, "post-1", n.SubjectId)
		}
	})

	t.Run("unresolvable handles are skipped silently", func(t *testing.T) {
		notifier := &MockNotifier{}
		NewMentions(identity, notifier).Fanout(ctx, author, "hello @bob and @nobody", "post-2")

		emitted := notifier.Emitted()
		require.Len(t, emitted, 1)
		assert.Equal(t, "u-bob", emitted[0].To)
	})

	t.Run("notifier failure does not propagate", func(t *testing.T) {
		notifier := &MockNotifier{emitFunc: func(domain.Notification) error {
			return errors.New("store down")
		}}

		assert.NotPanics(t, func() {
			NewMentions(identity, notifier).Fanout(ctx, author, "hi @bob", "post-3")
		})
	})

	t.Run("no mentions emits nothing", func(t *testing.T) {
		notifier := &MockNotifier{}
		NewMentions(identity, notifier).Fanout(ctx, author, "no handles here", "post-4")
		assert.Empty(t, notifier.Emitted())
	})
}
