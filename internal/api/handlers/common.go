package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"BloodLink/domain"
)

// statusFor maps domain errors onto HTTP statuses: authorization failures to
// 403, state conflicts to 409, stock shortfalls to 422, lookups to 404 and
// everything else to 400.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthorizedDonationAccess),
		errors.Is(err, domain.ErrUserNotAllowed):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrDonationConflict):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrDonationNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrDonorProfileNotFound),
		errors.Is(err, domain.ErrHospitalNotFound),
		errors.Is(err, domain.ErrInventoryNotFound),
		errors.Is(err, domain.ErrNotificationNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusBadRequest
	}
}

func pagination(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	return page, limit
}

func paginationMap(page, limit int, count int64) fiber.Map {
	return fiber.Map{
		"page":        page,
		"limit":       limit,
		"total":       count,
		"total_pages": (count + int64(limit) - 1) / int64(limit),
	}
}
