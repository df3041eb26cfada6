package pg

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritim-dev/ritim/internal/domain"
)

func TestNotifications(t *testing.T) {
	ctx := context.Background()
	alice := seedUser(t, "ntfalice")
	bob := seedUser(t, "ntfbob")

	base := time.Now().UTC().Add(-time.Hour)
	for i, kind := range []string{domain.NotificationMention, domain.NotificationMessage, domain.NotificationMention} {
		err := storage.SaveNotification(ctx, domain.Notification{
			Id:        uuid.NewString(),
			To:        alice.Id,
			From:      bob.Id,
			Kind:      kind,
			SubjectId: "subject",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	t.Run("listing is newest first with sender handle", func(t *testing.T) {
		notifications, err := storage.NotificationsFor(ctx, alice.Id, 50)
		require.NoError(t, err)
		require.Len(t, notifications, 3)
		assert.Equal(t, domain.NotificationMention, notifications[0].Kind)
		assert.Equal(t, bob.Handle, notifications[0].FromHandle)
		assert.True(t, notifications[0].CreatedAt.After(notifications[2].CreatedAt))
	})

	t.Run("listing respects the window", func(t *testing.T) {
		notifications, err := storage.NotificationsFor(ctx, alice.Id, 2)
		require.NoError(t, err)
		assert.Len(t, notifications, 2)
	})

	t.Run("mark read flips everything once", func(t *testing.T) {
		updated, err := storage.MarkNotificationsRead(ctx, alice.Id)
		require.NoError(t, err)
		assert.Equal(t, 3, updated)

		updated, err = storage.MarkNotificationsRead(ctx, alice.Id)
		require.NoError(t, err)
		assert.Equal(t, 0, updated)
	})

	t.Run("sender sees nothing", func(t *testing.T) {
		notifications, err := storage.NotificationsFor(ctx, bob.Id, 50)
		require.NoError(t, err)
		assert.Empty(t, notifications)
	})
}
