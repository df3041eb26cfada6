package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ritim-dev/ritim/internal/domain"
	internal_errors "github.com/ritim-dev/ritim/internal/errors"
)

type pollQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *Storage) SavePoll(ctx context.Context, poll domain.Poll) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		var exists bool
		err := tx.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)", poll.PostId,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check post: %w", err)
		}
		if !exists {
			return internal_errors.NewNotFound("Post not found")
		}

		_, err = tx.ExecContext(ctx, `
            INSERT INTO polls (id, post_id, question, multiple, closes_at, created_by, created)
            VALUES ($1, $2, $3, $4, $5, $6, $7)
        `, poll.Id, poll.PostId, poll.Question, poll.Multiple, poll.ClosesAt, poll.CreatedBy, poll.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return internal_errors.NewConflict("Post already has a poll")
			}
			return fmt.Errorf("failed to insert poll: %w", err)
		}

		for ord, opt := range poll.Options {
			_, err = tx.ExecContext(ctx, `
                INSERT INTO poll_options (id, poll_id, ord, text)
                VALUES ($1, $2, $3, $4)
            `, opt.Id, poll.Id, ord, opt.Text)
			if err != nil {
				return fmt.Errorf("failed to insert poll option: %w", err)
			}
		}
		return nil
	})
}

func (s *Storage) GetPoll(ctx context.Context, id domain.PollId) (domain.Poll, error) {
	return getPoll(ctx, s.db, "id", id)
}

func (s *Storage) PollByPost(ctx context.Context, postId domain.PostId) (domain.Poll, error) {
	return getPoll(ctx, s.db, "post_id", postId)
}

func getPoll(ctx context.Context, q pollQuerier, keyColumn, key string) (domain.Poll, error) {
	var poll domain.Poll
	err := q.QueryRowContext(ctx, fmt.Sprintf(`
        SELECT id, post_id, question, multiple, total_votes, closes_at, created_by, created
        FROM polls WHERE %s = $1
    `, keyColumn), key).Scan(
		&poll.Id, &poll.PostId, &poll.Question, &poll.Multiple,
		&poll.TotalVotes, &poll.ClosesAt, &poll.CreatedBy, &poll.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Poll{}, internal_errors.NewNotFound("Poll not found")
		}
		return domain.Poll{}, fmt.Errorf("failed to fetch poll: %w", err)
	}

	rows, err := q.QueryContext(ctx, `
        SELECT id, text, votes FROM poll_options WHERE poll_id = $1 ORDER BY ord
    `, poll.Id)
	if err != nil {
		return domain.Poll{}, fmt.Errorf("failed to fetch poll options: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var opt domain.PollOption
		if err := rows.Scan(&opt.Id, &opt.Text, &opt.Votes); err != nil {
			return domain.Poll{}, fmt.Errorf("failed to scan poll option: %w", err)
		}
		poll.Options = append(poll.Options, opt)
	}
	return poll, rows.Err()
}

// CastVote commits one vote atomically: the closed re-check, the single-vote
// guard, both counter increments and the vote record form one unit. Either
// everything lands or nothing does.
func (s *Storage) CastVote(ctx context.Context, pollId domain.PollId, userId domain.UserId, optionId domain.OptionId) (domain.Poll, error) {
	var updated domain.Poll
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var closesAt *time.Time
		err := tx.QueryRowContext(ctx,
			"SELECT closes_at FROM polls WHERE id = $1", pollId,
		).Scan(&closesAt)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return internal_errors.NewNotFound("Poll not found")
			}
			return fmt.Errorf("failed to fetch poll: %w", err)
		}
		// time may have advanced since the caller's pre-check
		if closesAt != nil && !time.Now().Before(*closesAt) {
			return internal_errors.NewConflict("Poll is closed")
		}

		var alreadyVoted bool
		err = tx.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM poll_votes WHERE poll_id = $1 AND user_id = $2)",
			pollId, userId,
		).Scan(&alreadyVoted)
		if err != nil {
			return fmt.Errorf("failed to check existing vote: %w", err)
		}
		if alreadyVoted {
			return internal_errors.NewConflict("Already voted in this poll")
		}

		result, err := tx.ExecContext(ctx,
			"UPDATE poll_options SET votes = votes + 1 WHERE id = $1 AND poll_id = $2",
			optionId, pollId)
		if err != nil {
			return fmt.Errorf("failed to increment option votes: %w", err)
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return internal_errors.NewBadRequest("Invalid poll option")
		}

		if _, err = tx.ExecContext(ctx,
			"UPDATE polls SET total_votes = total_votes + 1 WHERE id = $1", pollId); err != nil {
			return fmt.Errorf("failed to increment total votes: %w", err)
		}

		if _, err = tx.ExecContext(ctx, `
            INSERT INTO poll_votes (poll_id, user_id, option_id, cast_at)
            VALUES ($1, $2, $3, $4)
        `, pollId, userId, optionId, time.Now().UTC()); err != nil {
			// two concurrent first votes can race past the EXISTS check;
			// the primary key catches the loser
			if isUniqueViolation(err) {
				return internal_errors.NewConflict("Already voted in this poll")
			}
			return fmt.Errorf("failed to insert vote record: %w", err)
		}

		updated, err = getPoll(ctx, tx, "id", pollId)
		return err
	})
	if err != nil {
		return domain.Poll{}, err
	}
	return updated, nil
}
