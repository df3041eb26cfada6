package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritim-dev/ritim/internal/domain"
	internal_errors "github.com/ritim-dev/ritim/internal/errors"
)

// --- Mocks ---

// MockPollStorage mocks the PollStorage interface.
type MockPollStorage struct {
	savePollFunc func(poll domain.Poll) error
	getPollFunc  func(id domain.PollId) (domain.Poll, error)
	castVoteFunc func(pollId domain.PollId, userId domain.UserId, optionId domain.OptionId) (domain.Poll, error)

	mu             sync.Mutex
	castVoteCalled bool
	savedPoll      *domain.Poll
}

func (m *MockPollStorage) SavePoll(_ context.Context, poll domain.Poll) error {
	m.mu.Lock()
	m.savedPoll = &poll
	m.mu.Unlock()

	if m.savePollFunc != nil {
		return m.savePollFunc(poll)
	}
	return nil
}

func (m *MockPollStorage) GetPoll(_ context.Context, id domain.PollId) (domain.Poll, error) {
	if m.getPollFunc != nil {
		return m.getPollFunc(id)
	}
	return domain.Poll{Id: id}, nil
}

func (m *MockPollStorage) CastVote(_ context.Context, pollId domain.PollId, userId domain.UserId, optionId domain.OptionId) (domain.Poll, error) {
	m.mu.Lock()
	m.castVoteCalled = true
	m.mu.Unlock()

	if m.castVoteFunc != nil {
		return m.castVoteFunc(pollId, userId, optionId)
	}
	return domain.Poll{Id: pollId}, nil
}

// --- Helpers ---

func openPoll() domain.Poll {
	return domain.Poll{
		Id:       "p1",
		Question: "favorite?",
		Options: []domain.PollOption{
			{Id: "opt-a", Text: "A"},
			{Id: "opt-b", Text: "B"},
		},
	}
}

func assertStatusCode(t *testing.T, err error, want int) {
	t.Helper()
	require.Error(t, err)
	statusErr, ok := err.(*internal_errors.ErrorWithStatusCode)
	require.True(t, ok, "expected ErrorWithStatusCode, got %T", err)
	assert.Equal(t, want, statusErr.StatusCode)
}

// --- Tests ---

func TestPollVote(t *testing.T) {
	ctx := context.Background()

	t.Run("successful vote returns updated poll", func(t *testing.T) {
		updated := openPoll()
		updated.Options[0].Votes = 1
		updated.TotalVotes = 1

		storage := &MockPollStorage{
			getPollFunc: func(id domain.PollId) (domain.Poll, error) { return openPoll(), nil },
			castVoteFunc: func(pollId domain.PollId, userId domain.UserId, optionId domain.OptionId) (domain.Poll, error) {
				assert.Equal(t, "p1", pollId)
				assert.Equal(t, "u1", userId)
				assert.Equal(t, "opt-a", optionId)
				return updated, nil
			},
		}

		poll, err := NewPoll(storage).Vote(ctx, "p1", "u1", "opt-a")
		require.NoError(t, err)
		assert.Equal(t, 1, poll.TotalVotes)
		assert.Equal(t, 1, poll.Options[0].Votes)
	})

	t.Run("missing poll fails fast", func(t *testing.T) {
		storage := &MockPollStorage{
			getPollFunc: func(id domain.PollId) (domain.Poll, error) {
				return domain.Poll{}, internal_errors.NewNotFound("Poll not found")
			},
		}

		_, err := NewPoll(storage).Vote(ctx, "missing", "u1", "opt-a")
		assert.True(t, internal_errors.IsNotFound(err))
		assert.False(t, storage.castVoteCalled)
	})

	t.Run("unknown option fails fast", func(t *testing.T) {
		storage := &MockPollStorage{
			getPollFunc: func(id domain.PollId) (domain.Poll, error) { return openPoll(), nil },
		}

		_, err := NewPoll(storage).Vote(ctx, "p1", "u1", "opt-zzz")
		assertStatusCode(t, err, 400)
		assert.False(t, storage.castVoteCalled)
	})

	t.Run("closed poll fails fast", func(t *testing.T) {
		closedAt := time.Now().Add(-time.Hour)
		poll := openPoll()
		poll.ClosesAt = &closedAt

		storage := &MockPollStorage{
			getPollFunc: func(id domain.PollId) (domain.Poll, error) { return poll, nil },
		}

		_, err := NewPoll(storage).Vote(ctx, "p1", "u1", "opt-a")
		assertStatusCode(t, err, 409)
		assert.False(t, storage.castVoteCalled)
	})

	t.Run("already voted surfaces storage conflict", func(t *testing.T) {
		storage := &MockPollStorage{
			getPollFunc: func(id domain.PollId) (domain.Poll, error) { return openPoll(), nil },
			castVoteFunc: func(domain.PollId, domain.UserId, domain.OptionId) (domain.Poll, error) {
				return domain.Poll{}, internal_errors.NewConflict("Already voted in this poll")
			},
		}

		_, err := NewPoll(storage).Vote(ctx, "p1", "u1", "opt-b")
		assertStatusCode(t, err, 409)
	})

	t.Run("poll without close time never closes", func(t *testing.T) {
		storage := &MockPollStorage{
			getPollFunc: func(id domain.PollId) (domain.Poll, error) { return openPoll(), nil },
		}

		_, err := NewPoll(storage).Vote(ctx, "p1", "u1", "opt-b")
		assert.NoError(t, err)
		assert.True(t, storage.castVoteCalled)
	})
}

func TestPollCreate(t *testing.T) {
	ctx := context.Background()

	validData := func() domain.PollCreationData {
		return domain.PollCreationData{
			PostId:    "post-1",
			Question:  "favorite?",
			Options:   []string{"A", "B"},
			CreatedBy: "u1",
		}
	}

	t.Run("success mints option ids", func(t *testing.T) {
		storage := &MockPollStorage{}
		poll, err := NewPoll(storage).Create(ctx, validData())
		require.NoError(t, err)

		assert.NotEmpty(t, poll.Id)
		require.Len(t, poll.Options, 2)
		assert.NotEmpty(t, poll.Options[0].Id)
		assert.NotEqual(t, poll.Options[0].Id, poll.Options[1].Id)
		assert.Equal(t, 0, poll.TotalVotes)
		require.NotNil(t, storage.savedPoll)
		assert.Equal(t, poll.Id, storage.savedPoll.Id)
	})

	t.Run("needs at least two options", func(t *testing.T) {
		data := validData()
		data.Options = []string{"only one"}
		_, err := NewPoll(&MockPollStorage{}).Create(ctx, data)
		assertStatusCode(t, err, 400)
	})

	t.Run("rejects empty question", func(t *testing.T) {
		data := validData()
		data.Question = "  <b></b> "
		_, err := NewPoll(&MockPollStorage{}).Create(ctx, data)
		assertStatusCode(t, err, 400)
	})

	t.Run("rejects past close time", func(t *testing.T) {
		past := time.Now().Add(-time.Minute)
		data := validData()
		data.ClosesAt = &past
		_, err := NewPoll(&MockPollStorage{}).Create(ctx, data)
		assertStatusCode(t, err, 400)
	})
}
