package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/uandc/arena-market/internal/api/middleware"
	apperrors "github.com/uandc/arena-market/internal/errors"
	"github.com/uandc/arena-market/internal/models"
	repository "github.com/uandc/arena-market/internal/repositories"
	"github.com/uandc/arena-market/pkg/sendgrid"
)

type NotificationService struct {
	repo  repository.NotificationRepository
	email sendgrid.EmailService
}

func NewNotificationService(repo repository.NotificationRepository, email sendgrid.EmailService) *NotificationService {
	return &NotificationService{repo: repo, email: email}
}

// SendEmail persists the notification, attempts delivery, and records the
// outcome.
func (s *NotificationService) SendEmail(ctx context.Context, req *models.EmailNotificationRequest) (*models.Notification, error) {

	logger := middleware.LoggerFromContext(ctx)

	metadata, err := json.Marshal(req.Metadata)
	if err != nil {
		return nil, apperrors.InternalError("Failed to encode metadata").WithError(err)
	}

	notification := &models.Notification{
		ID:        uuid.New(),
		Type:      models.NotificationTypeEmail,
		Recipient: req.To,
		Subject:   req.Subject,
		Content:   req.Content,
		Status:    models.StatusPending,
		Metadata:  metadata,
	}

	if err := s.repo.CreateNotification(ctx, notification); err != nil {
		return nil, apperrors.DatabaseError("Failed to create notification").WithError(err)
	}

	if err := s.email.Send(ctx, req); err != nil {

		notification.Status = models.StatusFailed
		notification.ErrorMessage = err.Error()

		if updateErr := s.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusFailed, err.Error()); updateErr != nil {
			logger.Error("Failed to record notification failure", slog.Any("error", updateErr))
		}

		return notification, apperrors.ThirdPartyError("Failed to send email").WithError(err)
	}

	notification.Status = models.StatusSent

	if err := s.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusSent, ""); err != nil {
		logger.Error("Failed to record notification success", slog.Any("error", err))
	}

	return notification, nil
}

// SendOrderConfirmation emails the buyer their order summary. Amounts are
// formatted from minor units.
func (s *NotificationService) SendOrderConfirmation(ctx context.Context, email string, order *models.Order) error {

	content := fmt.Sprintf(
		"Your order %s has been placed.\n\nItems: %d\nSubtotal: %s\nDelivery: %s\nTotal: %s\nPayment reference: %s\n",
		order.ID, len(order.Items), formatAmount(order.Subtotal), formatAmount(order.DeliveryFee),
		formatAmount(order.TotalAmount), order.PaymentReference)

	req := &models.EmailNotificationRequest{
		To:      email,
		Subject: "Order confirmation",
		Content: content,
		Metadata: map[string]string{
			"order_id": order.ID.String(),
		},
	}

	_, err := s.SendEmail(ctx, req)

	return err
}

// ListForRecipient returns the notifications sent to one address, newest
// first.
func (s *NotificationService) ListForRecipient(ctx context.Context, recipient string, page, pageSize int) (*models.PaginatedResponse, error) {

	notifications, total, err := s.repo.ListByRecipient(ctx, recipient, page, pageSize)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to load notifications").WithError(err)
	}

	if notifications == nil {
		notifications = []models.Notification{}
	}

	return &models.PaginatedResponse{Data: notifications, Total: total, Page: page, PageSize: pageSize}, nil
}

func formatAmount(minor int64) string {
	return fmt.Sprintf("₦%d.%02d", minor/100, minor%100)
}
