package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ritim-dev/ritim/internal/api"
	"github.com/ritim-dev/ritim/internal/domain"
	mw "github.com/ritim-dev/ritim/internal/middleware"
	"github.com/ritim-dev/ritim/internal/utils"
)

func (h *Handler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	var body api.CreatePollRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	poll, err := h.poll.Create(r.Context(), domain.PollCreationData{
		PostId:    chi.URLParam(r, "post"),
		Question:  body.Question,
		Options:   body.Options,
		Multiple:  body.Multiple,
		ClosesAt:  body.ClosesAt,
		CreatedBy: user.Id,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, api.NewPollResponse(poll))
}

func (h *Handler) GetPoll(w http.ResponseWriter, r *http.Request) {
	poll, err := h.poll.Get(r.Context(), chi.URLParam(r, "poll"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.NewPollResponse(poll))
}

// Vote casts the session user's vote. Identity comes from the verified
// session, never from the payload.
func (h *Handler) Vote(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	var body api.VoteRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	poll, err := h.poll.Vote(r.Context(), chi.URLParam(r, "poll"), user.Id, body.OptionId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.NewPollResponse(poll))
}
