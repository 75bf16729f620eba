package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/auth"
)

const resourceNotification = "Notification"

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	filter, err := parseNotificationFilter(r.URL.Query())
	if err != nil {
		writeError(w, r, resourceNotification, err)
		return
	}
	list, err := s.svc.Notifications.ListNotifications(r.Context(), auth.UserID(r.Context()), filter)
	if err != nil {
		writeError(w, r, resourceNotification, err)
		return
	}
	NewJSONResponse().
		With("notifications", list.Notifications).
		With("unreadCount", list.UnreadCount).
		Write(w)
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Notifications.MarkRead(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, resourceNotification, err)
		return
	}
	NewJSONResponse().Message("Notification marked as read").Write(w)
}

func (s *Server) handleMarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	n, err := s.svc.Notifications.MarkAllRead(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		writeError(w, r, resourceNotification, err)
		return
	}
	NewJSONResponse().
		Message("All notifications marked as read").
		With("updated", n).
		Write(w)
}

func (s *Server) handleDeleteNotification(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Notifications.DeleteNotification(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, resourceNotification, err)
		return
	}
	NewJSONResponse().Message("Notification deleted successfully").Write(w)
}
