package setup

import (
	"github.com/ritim-dev/ritim/internal/config"
	"github.com/ritim-dev/ritim/internal/handler"
	"github.com/ritim-dev/ritim/internal/jwt"
	"github.com/ritim-dev/ritim/internal/middleware"
	"github.com/ritim-dev/ritim/internal/service"
	"github.com/ritim-dev/ritim/internal/storage/pg"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage        *pg.Storage
	Handler        *handler.Handler
	AuthMiddleware *middleware.Auth
	Config         *config.Config
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	identity := service.NewIdentity(storage)
	notification := service.NewNotification(storage, &cfg.Public)
	mentions := service.NewMentions(identity, notification)

	auth := service.NewAuth(storage, jwtService)
	post := service.NewPost(storage, mentions, &cfg.Public)
	poll := service.NewPoll(storage)
	reaction := service.NewReaction(storage)
	chat := service.NewChat(storage, identity, notification, &cfg.Public)

	h := handler.New(auth, post, poll, reaction, chat, notification, cfg)

	return &Dependencies{
		Storage:        storage,
		Handler:        h,
		AuthMiddleware: middleware.NewAuth(jwtService, cfg.Public.SecureCookies),
		Config:         cfg,
	}, nil
}
