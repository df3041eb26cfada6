package domain

import "time"

type Poll struct {
	Id         PollId
	PostId     PostId
	Question   string
	Options    []PollOption
	TotalVotes int // invariant: equals sum of option votes
	Multiple   bool
	ClosesAt   *time.Time // nil means the poll never auto-closes
	CreatedBy  UserId
	CreatedAt  time.Time
}

// Closed reports whether the poll stopped accepting votes at the given moment.
func (p *Poll) Closed(now time.Time) bool {
	return p.ClosesAt != nil && !now.Before(*p.ClosesAt)
}

type PollOption struct {
	Id    OptionId
	Text  string
	Votes int
}

type PollCreationData struct {
	PostId    PostId
	Question  string
	Options   []string
	Multiple  bool
	ClosesAt  *time.Time
	CreatedBy UserId
}

type Vote struct {
	PollId   PollId
	UserId   UserId
	OptionId OptionId
	CastAt   time.Time
}
