package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ritim-dev/ritim/internal/config"
	"github.com/ritim-dev/ritim/internal/logger"
	"github.com/ritim-dev/ritim/internal/service"
)

type Handler struct {
	auth         service.AuthService
	post         service.PostService
	poll         service.PollService
	reaction     service.ReactionService
	chat         service.ChatService
	notification service.NotificationService
	cfg          *config.Config
}

func New(
	auth service.AuthService,
	post service.PostService,
	poll service.PollService,
	reaction service.ReactionService,
	chat service.ChatService,
	notification service.NotificationService,
	cfg *config.Config,
) *Handler {
	return &Handler{auth, post, poll, reaction, chat, notification, cfg}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}
