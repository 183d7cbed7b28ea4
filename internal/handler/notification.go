package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"goldenbites/internal/apperror"
	"goldenbites/internal/notification"
	"goldenbites/internal/session"
)

type NotificationHandler struct {
	repo notification.Repository
}

func NewNotificationHandler(repo notification.Repository) *NotificationHandler {
	return &NotificationHandler{repo: repo}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, err := session.Identity(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	notifications, err := h.repo.ListByUser(r.Context(), actor.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	actor, err := session.Identity(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "notificationID"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, r, apperror.New(apperror.KindValidation, "invalid notification id"))
		return
	}

	if err := h.repo.MarkRead(r.Context(), actor.ID, id); err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, map[string]bool{"read": true})
}
