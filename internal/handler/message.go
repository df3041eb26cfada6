package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ritim-dev/ritim/internal/api"
	"github.com/ritim-dev/ritim/internal/domain"
	mw "github.com/ritim-dev/ritim/internal/middleware"
	"github.com/ritim-dev/ritim/internal/utils"
)

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	var body api.SendMessageRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	msg, err := h.chat.Send(r.Context(), *user, domain.UserRef{Id: body.ToUserId, Handle: body.ToHandle}, body.Text)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, api.NewMessageResponse(msg))
}

func (h *Handler) ListThreads(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	threads, err := h.chat.ListThreads(r.Context(), user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	resp := api.ThreadListResponse{Threads: make([]api.ThreadSummaryResponse, len(threads))}
	for i, t := range threads {
		resp.Threads[i] = api.ThreadSummaryResponse{
			OtherUserId: t.OtherUserId,
			OtherHandle: t.OtherHandle,
			LastText:    t.LastText,
			LastAt:      t.LastAt,
			UnreadCount: t.UnreadCount,
		}
	}
	writeJSON(w, resp)
}

func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	messages, err := h.chat.Thread(r.Context(), user.Id, otherPartyRef(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	resp := api.ThreadResponse{Messages: make([]api.MessageResponse, len(messages))}
	for i, m := range messages {
		resp.Messages[i] = api.NewMessageResponse(m)
	}
	writeJSON(w, resp)
}

func (h *Handler) MarkThreadRead(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	updated, err := h.chat.MarkThreadRead(r.Context(), user.Id, otherPartyRef(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.MarkReadResponse{Updated: updated})
}

// otherPartyRef reads the {other} url segment, accepting a user id or a
// handle. Ids are uuids, handles can't be, so the two never collide.
func otherPartyRef(r *http.Request) domain.UserRef {
	other := chi.URLParam(r, "other")
	if _, err := uuid.Parse(other); err == nil {
		return domain.UserRef{Id: other}
	}
	return domain.UserRef{Handle: other}
}
