package handlers

import (
	"github.com/gofiber/fiber/v2"

	"BloodLink/domain"
	"BloodLink/internal/api/presenters"
	"BloodLink/pkg/notification"
)

type (
	NotificationHandler interface {
		GetNotifications(c *fiber.Ctx) error
		UnreadCount(c *fiber.Ctx) error
		MarkRead(c *fiber.Ctx) error
		MarkAllRead(c *fiber.Ctx) error
	}

	notificationHandler struct {
		notificationService notification.NotificationService
	}
)

func NewNotificationHandler(notificationService notification.NotificationService) NotificationHandler {
	return &notificationHandler{notificationService: notificationService}
}

func (h *notificationHandler) GetNotifications(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	page, limit := pagination(c)

	notifications, count, err := h.notificationService.ListUserNotifications(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetNotifications, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"notifications": notifications,
		"pagination":    paginationMap(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetNotifications)
}

func (h *notificationHandler) UnreadCount(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	count, err := h.notificationService.UnreadCount(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetNotifications, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"count": count,
	}, fiber.StatusOK, domain.MessageSuccessGetNotifications)
}

func (h *notificationHandler) MarkRead(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	notificationID := c.Params("id")

	if err := h.notificationService.MarkRead(c.Context(), notificationID, userID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedMarkRead, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessMarkRead)
}

func (h *notificationHandler) MarkAllRead(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.notificationService.MarkAllRead(c.Context(), userID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedMarkRead, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessMarkRead)
}
