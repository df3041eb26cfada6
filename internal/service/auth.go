package service

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ritim-dev/ritim/internal/domain"
	"github.com/ritim-dev/ritim/internal/errors"
	"github.com/ritim-dev/ritim/internal/logger"
)

var handlePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

type AuthService interface {
	Register(ctx context.Context, creds domain.Credentials) (domain.User, string, error)
	Login(ctx context.Context, email domain.Email, password domain.Password) (domain.User, string, error)
}

type AuthStorage interface {
	SaveUser(ctx context.Context, user domain.User) error
	UserByEmail(ctx context.Context, email domain.Email) (domain.User, error)
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

type Auth struct {
	storage AuthStorage
	jwt     Jwt
}

func NewAuth(storage AuthStorage, jwt Jwt) *Auth {
	return &Auth{storage, jwt}
}

// Register creates the user and returns it with a fresh session token.
// The handle must match the mention grammar so mention extraction can
// always reference a registered user verbatim.
func (a *Auth) Register(ctx context.Context, creds domain.Credentials) (domain.User, string, error) {
	if !handlePattern.MatchString(creds.Handle) {
		return domain.User{}, "", errors.NewBadRequest("Handle may contain only letters, digits and underscore")
	}
	if utf8.RuneCountInString(creds.Handle) > 30 {
		return domain.User{}, "", errors.NewBadRequest("Handle is too long")
	}
	if len(creds.Password) < 8 {
		return domain.User{}, "", errors.NewBadRequest("Password must be at least 8 characters")
	}
	email := strings.ToLower(creds.Email)
	if !strings.Contains(email, "@") {
		return domain.User{}, "", errors.NewBadRequest("Email is invalid")
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return domain.User{}, "", err
	}

	user := domain.User{
		Id:        uuid.NewString(),
		Handle:    creds.Handle,
		Email:     email,
		PassHash:  string(passHash),
		Role:      domain.RoleUser,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.storage.SaveUser(ctx, user); err != nil {
		return domain.User{}, "", err
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

func (a *Auth) Login(ctx context.Context, email domain.Email, password domain.Password) (domain.User, string, error) {
	user, err := a.storage.UserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.IsNotFound(err) {
			// don't leak which part of the credentials was wrong
			return domain.User{}, "", errors.NewBadRequest("Invalid credentials")
		}
		return domain.User{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(password)); err != nil {
		return domain.User{}, "", errors.NewBadRequest("Invalid credentials")
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}
