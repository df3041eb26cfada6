package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ritim-dev/ritim/internal/domain"
	"github.com/ritim-dev/ritim/internal/errors"
	"github.com/ritim-dev/ritim/internal/middleware/metrics"
	service_utils "github.com/ritim-dev/ritim/internal/service/utils"
)

const (
	minPollOptions = 2
	maxPollOptions = 10
	maxQuestionLen = 300
	maxOptionLen   = 100
)

type PollService interface {
	Create(ctx context.Context, data domain.PollCreationData) (domain.Poll, error)
	Get(ctx context.Context, id domain.PollId) (domain.Poll, error)
	Vote(ctx context.Context, pollId domain.PollId, userId domain.UserId, optionId domain.OptionId) (domain.Poll, error)
}

type PollStorage interface {
	SavePoll(ctx context.Context, poll domain.Poll) error
	GetPoll(ctx context.Context, id domain.PollId) (domain.Poll, error)
	CastVote(ctx context.Context, pollId domain.PollId, userId domain.UserId, optionId domain.OptionId) (domain.Poll, error)
}

type Poll struct {
	storage PollStorage
}

func NewPoll(storage PollStorage) *Poll {
	return &Poll{storage}
}

func (p *Poll) Create(ctx context.Context, data domain.PollCreationData) (domain.Poll, error) {
	question := service_utils.CleanText(data.Question, maxQuestionLen)
	if question == "" {
		return domain.Poll{}, errors.NewBadRequest("Question is empty")
	}

	options := make([]domain.PollOption, 0, len(data.Options))
	for _, text := range data.Options {
		text = service_utils.CleanText(text, maxOptionLen)
		if text == "" {
			return domain.Poll{}, errors.NewBadRequest("Option text is empty")
		}
		options = append(options, domain.PollOption{Id: uuid.NewString(), Text: text})
	}
	if len(options) < minPollOptions {
		return domain.Poll{}, errors.NewBadRequest("Poll needs at least two options")
	}
	if len(options) > maxPollOptions {
		return domain.Poll{}, errors.NewBadRequest("Too many poll options")
	}
	if data.ClosesAt != nil && !data.ClosesAt.After(time.Now()) {
		return domain.Poll{}, errors.NewBadRequest("Close time is in the past")
	}

	poll := domain.Poll{
		Id:        uuid.NewString(),
		PostId:    data.PostId,
		Question:  question,
		Options:   options,
		Multiple:  data.Multiple,
		ClosesAt:  data.ClosesAt,
		CreatedBy: data.CreatedBy,
		CreatedAt: time.Now().UTC(),
	}
	if err := p.storage.SavePoll(ctx, poll); err != nil {
		return domain.Poll{}, err
	}
	return poll, nil
}

func (p *Poll) Get(ctx context.Context, id domain.PollId) (domain.Poll, error) {
	return p.storage.GetPoll(ctx, id)
}

// Vote casts the user's single allowed vote. The fast-fail pre-checks run
// outside the transaction; storage re-checks the close time and the
// single-vote guard inside it, since both can change between the two reads.
// One vote per (poll, user) holds regardless of the poll's Multiple flag.
func (p *Poll) Vote(ctx context.Context, pollId domain.PollId, userId domain.UserId, optionId domain.OptionId) (domain.Poll, error) {
	poll, err := p.storage.GetPoll(ctx, pollId)
	if err != nil {
		return domain.Poll{}, err
	}

	valid := false
	for _, opt := range poll.Options {
		if opt.Id == optionId {
			valid = true
			break
		}
	}
	if !valid {
		return domain.Poll{}, errors.NewBadRequest("Invalid poll option")
	}
	if poll.Closed(time.Now()) {
		return domain.Poll{}, errors.NewConflict("Poll is closed")
	}

	updated, err := p.storage.CastVote(ctx, pollId, userId, optionId)
	if err != nil {
		return domain.Poll{}, err
	}
	metrics.VotesCast.Inc()
	return updated, nil
}
