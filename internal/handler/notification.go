package handler

import (
	"net/http"

	"github.com/ritim-dev/ritim/internal/api"
	mw "github.com/ritim-dev/ritim/internal/middleware"
	"github.com/ritim-dev/ritim/internal/utils"
)

func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	notifications, err := h.notification.List(r.Context(), user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	resp := api.NotificationListResponse{Notifications: make([]api.NotificationResponse, len(notifications))}
	for i, n := range notifications {
		resp.Notifications[i] = api.NotificationResponse{
			Id:         n.Id,
			From:       n.From,
			FromHandle: n.FromHandle,
			Kind:       n.Kind,
			SubjectId:  n.SubjectId,
			CreatedAt:  n.CreatedAt,
			Read:       n.Read,
		}
	}
	writeJSON(w, resp)
}

func (h *Handler) MarkNotificationsRead(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	updated, err := h.notification.MarkRead(r.Context(), user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.MarkReadResponse{Updated: updated})
}
