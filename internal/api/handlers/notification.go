package handlers

import (
	"context"
	"net/http"

	"github.com/uandc/arena-market/internal/models"
	"github.com/uandc/arena-market/internal/utils/response"
)

type NotificationService interface {
	ListForRecipient(ctx context.Context, recipient string, page, pageSize int) (*models.PaginatedResponse, error)
}

type NotificationHandler struct {
	notificationService NotificationService
}

func NewNotificationHandler(service NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: service}
}

// ListNotifications returns the notifications addressed to the caller.
func (h *NotificationHandler) ListNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		page, pageSize := parsePagination(r)

		result, err := h.notificationService.ListForRecipient(r.Context(), claims.Email, page, pageSize)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, result)
	}
}
