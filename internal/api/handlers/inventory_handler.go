package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"BloodLink/domain"
	"BloodLink/internal/api/presenters"
	"BloodLink/pkg/inventory"
	"BloodLink/pkg/user"
)

type (
	InventoryHandler interface {
		GetHospitalInventory(c *fiber.Ctx) error
		Debit(c *fiber.Ctx) error
	}

	inventoryHandler struct {
		inventoryService inventory.InventoryService
		userRepository   user.UserRepository
		validator        *validator.Validate
	}
)

func NewInventoryHandler(inventoryService inventory.InventoryService, userRepository user.UserRepository, validator *validator.Validate) InventoryHandler {
	return &inventoryHandler{
		inventoryService: inventoryService,
		userRepository:   userRepository,
		validator:        validator,
	}
}

func (h *inventoryHandler) GetHospitalInventory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	hospital, err := h.userRepository.GetHospitalProfileByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetInventory, domain.ErrHospitalNotFound)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetInventory, err)
	}

	entries, err := h.inventoryService.GetHospitalInventory(c.Context(), hospital.ID.String())
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetInventory, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"inventory": entries,
	}, fiber.StatusOK, domain.MessageSuccessGetInventory)
}

type debitRequest struct {
	BloodGroup string `json:"blood_group" validate:"required"`
	Units      int    `json:"units" validate:"required,min=1"`
}

// Debit lets a hospital issue stock out of its own inventory.
func (h *inventoryHandler) Debit(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(debitRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAdjustInventory, err)
	}

	hospital, err := h.userRepository.GetHospitalProfileByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedAdjustInventory, domain.ErrHospitalNotFound)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAdjustInventory, err)
	}

	if err := h.inventoryService.Debit(c.Context(), hospital.ID.String(), req.BloodGroup, req.Units); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedAdjustInventory, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessAdjustInventory)
}
