package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ritim-dev/ritim/internal/domain"
)

const messageColumns = "id, thread_key, from_id, to_id, text, created, read"

func (s *Storage) SaveMessage(ctx context.Context, msg domain.Message) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO messages (id, thread_key, from_id, to_id, text, created, read)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, msg.Id, msg.ThreadKey, msg.From, msg.To, msg.Text, msg.CreatedAt, msg.Read)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

func scanMessages(rows *sql.Rows) ([]domain.Message, error) {
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.Id, &m.ThreadKey, &m.From, &m.To, &m.Text, &m.CreatedAt, &m.Read); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// MessagesSentBy fetches the user's recent outgoing messages, newest first.
// The store cannot express "from = X OR to = X" as one indexed query, so
// thread listing merges the two directional slices.
func (s *Storage) MessagesSentBy(ctx context.Context, userId domain.UserId, limit int) ([]domain.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+messageColumns+" FROM messages WHERE from_id = $1 ORDER BY created DESC LIMIT $2",
		userId, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sent messages: %w", err)
	}
	return scanMessages(rows)
}

// MessagesSentTo fetches the user's recent incoming messages, newest first.
func (s *Storage) MessagesSentTo(ctx context.Context, userId domain.UserId, limit int) ([]domain.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+messageColumns+" FROM messages WHERE to_id = $1 ORDER BY created DESC LIMIT $2",
		userId, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch received messages: %w", err)
	}
	return scanMessages(rows)
}

// ThreadMessages returns the thread's recent window ordered oldest to newest.
func (s *Storage) ThreadMessages(ctx context.Context, key domain.ThreadKey, limit int) ([]domain.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT `+messageColumns+` FROM (
            SELECT `+messageColumns+` FROM messages
            WHERE thread_key = $1
            ORDER BY created DESC
            LIMIT $2
        ) recent ORDER BY created
    `, key, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch thread messages: %w", err)
	}
	return scanMessages(rows)
}

// MarkThreadRead flips the unread flag on recent messages addressed to the
// reader within the thread, as one batched write. Returns the number flipped;
// 0 means the window was already read. The window bound mirrors the unread
// aggregation bound: older unread messages are out of reach by design of the
// fixed recent-history fetch.
func (s *Storage) MarkThreadRead(ctx context.Context, key domain.ThreadKey, readerId domain.UserId, limit int) (int, error) {
	var updated int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
            UPDATE messages SET read = TRUE
            WHERE id IN (
                SELECT id FROM messages
                WHERE thread_key = $1 AND to_id = $2 AND read = FALSE
                ORDER BY created DESC
                LIMIT $3
            )
        `, key, readerId, limit)
		if err != nil {
			return fmt.Errorf("failed to mark thread read: %w", err)
		}
		updated, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	return int(updated), nil
}
