package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/avinashingale116-sys/mydeal/internal/api/dto"
	"github.com/avinashingale116-sys/mydeal/internal/auth"
	"github.com/avinashingale116-sys/mydeal/internal/service"
	apperrors "github.com/avinashingale116-sys/mydeal/pkg/util"
)

// NotificationsHandler exposes the viewer's notification log.
type NotificationsHandler struct {
	notifications *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notifications *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notifications}
}

// List GET /notifications.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("session required")
	}

	entries, err := h.notifications.ListForViewer(c.Context(), principal.User)
	if err != nil {
		return err
	}

	result := make([]dto.NotificationResponse, 0, len(entries))
	for _, entry := range entries {
		result = append(result, dto.NotificationResponse{
			ID:               entry.ID,
			Message:          entry.Message,
			Type:             entry.Type,
			Read:             entry.Read,
			RelatedRequestID: entry.RelatedRequestID,
			CreatedAt:        entry.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": result})
}

// MarkRead POST /notifications/:id/read.
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("session required")
	}
	if err := h.notifications.MarkRead(c.Context(), principal.User, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"read": true}})
}

// ClearAll DELETE /notifications.
func (h *NotificationsHandler) ClearAll(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("session required")
	}
	if err := h.notifications.ClearAll(c.Context(), principal.User); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"cleared": true}})
}
