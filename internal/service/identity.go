package service

import (
	"context"

	"github.com/ritim-dev/ritim/internal/domain"
	"github.com/ritim-dev/ritim/internal/errors"
)

type IdentityService interface {
	Resolve(ctx context.Context, ref domain.UserRef) (domain.User, error)
}

type IdentityStorage interface {
	UserById(ctx context.Context, id domain.UserId) (domain.User, error)
	UserByHandle(ctx context.Context, handle domain.Handle) (domain.User, error)
}

type Identity struct {
	storage IdentityStorage
}

func NewIdentity(storage IdentityStorage) *Identity {
	return &Identity{storage}
}

// Resolve maps a user reference to the canonical user record.
// Exactly one of ref.Id / ref.Handle must be set; anything else is a caller
// error. Handle lookup is exact and case-sensitive.
func (i *Identity) Resolve(ctx context.Context, ref domain.UserRef) (domain.User, error) {
	switch {
	case ref.Id != "" && ref.Handle != "":
		return domain.User{}, errors.NewBadRequest("Provide either user id or handle, not both")
	case ref.Id != "":
		return i.storage.UserById(ctx, ref.Id)
	case ref.Handle != "":
		return i.storage.UserByHandle(ctx, ref.Handle)
	default:
		return domain.User{}, errors.NewBadRequest("User id or handle required")
	}
}
