package handler

import (
	"net/http"
	"time"

	"github.com/ritim-dev/ritim/internal/api"
)

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, api.HealthResponse{Ok: true, Time: time.Now().UTC()})
}
