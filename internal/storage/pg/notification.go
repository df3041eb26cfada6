package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ritim-dev/ritim/internal/domain"
)

func (s *Storage) SaveNotification(ctx context.Context, n domain.Notification) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO notifications (id, to_id, from_id, kind, subject_id, created, read)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, n.Id, n.To, n.From, n.Kind, n.SubjectId, n.CreatedAt, n.Read)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// NotificationsFor lists the user's recent notifications, newest first.
func (s *Storage) NotificationsFor(ctx context.Context, userId domain.UserId, limit int) ([]domain.Notification, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT n.id, n.to_id, n.from_id, u.handle, n.kind, n.subject_id, n.created, n.read
        FROM notifications n
        JOIN users u ON u.id = n.from_id
        WHERE n.to_id = $1
        ORDER BY n.created DESC
        LIMIT $2
    `, userId, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.Id, &n.To, &n.From, &n.FromHandle, &n.Kind, &n.SubjectId, &n.CreatedAt, &n.Read); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkNotificationsRead flips all unread notifications for the user in one
// batched write and returns the number flipped.
func (s *Storage) MarkNotificationsRead(ctx context.Context, userId domain.UserId) (int, error) {
	var updated int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			"UPDATE notifications SET read = TRUE WHERE to_id = $1 AND read = FALSE", userId)
		if err != nil {
			return fmt.Errorf("failed to mark notifications read: %w", err)
		}
		updated, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	return int(updated), nil
}
