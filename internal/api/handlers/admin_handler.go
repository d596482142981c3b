package handlers

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"BloodLink/domain"
	"BloodLink/internal/api/presenters"
	"BloodLink/internal/utils/sms"
	"BloodLink/pkg/donation"
	"BloodLink/pkg/inventory"
	"BloodLink/pkg/user"
)

type (
	AdminHandler interface {
		ListDonors(c *fiber.Ctx) error
		ListHospitals(c *fiber.Ctx) error
		ListDonations(c *fiber.Ctx) error
		CreateAdmin(c *fiber.Ctx) error
		DeleteUser(c *fiber.Ctx) error
		GetAllInventory(c *fiber.Ctx) error
		AdjustInventory(c *fiber.Ctx) error
		ListAdjustments(c *fiber.Ctx) error
		SendTestSMS(c *fiber.Ctx) error
		GetTestSMSHistory(c *fiber.Ctx) error
	}

	adminHandler struct {
		userService      user.UserService
		donationService  donation.DonationService
		inventoryService inventory.InventoryService
		smsClient        *sms.Client
		smsHistory       *sms.History
		validator        *validator.Validate
	}
)

func NewAdminHandler(userService user.UserService, donationService donation.DonationService, inventoryService inventory.InventoryService, smsClient *sms.Client, smsHistory *sms.History, validator *validator.Validate) AdminHandler {
	return &adminHandler{
		userService:      userService,
		donationService:  donationService,
		inventoryService: inventoryService,
		smsClient:        smsClient,
		smsHistory:       smsHistory,
		validator:        validator,
	}
}

func (h *adminHandler) ListDonors(c *fiber.Ctx) error {
	page, limit := pagination(c)

	donors, count, err := h.userService.ListDonors(c.Context(), page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetUsers, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"donors":     donors,
		"pagination": paginationMap(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetUsers)
}

func (h *adminHandler) ListHospitals(c *fiber.Ctx) error {
	page, limit := pagination(c)

	hospitals, count, err := h.userService.ListHospitals(c.Context(), page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetUsers, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"hospitals":  hospitals,
		"pagination": paginationMap(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetUsers)
}

func (h *adminHandler) ListDonations(c *fiber.Ctx) error {
	status := c.Query("status")
	page, limit := pagination(c)

	donations, count, err := h.donationService.ListAllDonations(c.Context(), status, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"donations":  donations,
		"pagination": paginationMap(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

type createAdminRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (h *adminHandler) CreateAdmin(c *fiber.Ctx) error {
	req := new(createAdminRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRegister, err)
	}

	admin, err := h.userService.CreateAdmin(c.Context(), req.Email, req.Password)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedRegister, err)
	}

	return presenters.SuccessResponse(c, admin, fiber.StatusCreated, domain.MessageSuccessRegister)
}

func (h *adminHandler) DeleteUser(c *fiber.Ctx) error {
	userID := c.Params("id")

	if err := h.userService.DeleteUser(c.Context(), userID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeleteUser, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteUser)
}

func (h *adminHandler) GetAllInventory(c *fiber.Ctx) error {
	entries, err := h.inventoryService.GetAllInventory(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetInventory, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"inventory": entries,
	}, fiber.StatusOK, domain.MessageSuccessGetInventory)
}

func (h *adminHandler) AdjustInventory(c *fiber.Ctx) error {
	actorID := c.Locals("user_id").(string)

	req := new(domain.AdjustInventoryRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.InventoryID = c.Params("id")

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAdjustInventory, err)
	}

	entry, err := h.inventoryService.Adjust(c.Context(), *req, actorID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedAdjustInventory, err)
	}

	return presenters.SuccessResponse(c, entry, fiber.StatusOK, domain.MessageSuccessAdjustInventory)
}

func (h *adminHandler) ListAdjustments(c *fiber.Ctx) error {
	inventoryID := c.Params("id")

	adjustments, err := h.inventoryService.ListAdjustments(c.Context(), inventoryID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetAdjustments, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"adjustments": adjustments,
	}, fiber.StatusOK, domain.MessageSuccessGetAdjustments)
}

func (h *adminHandler) SendTestSMS(c *fiber.Ctx) error {
	req := new(domain.TestSMSRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendTestSMS, err)
	}

	entry := sms.HistoryEntry{
		To:      req.PhoneNumber,
		Message: req.Message,
		SentAt:  time.Now(),
	}

	if _, err := h.smsClient.SendSMS(req.PhoneNumber, req.Message); err != nil {
		entry.Error = err.Error()
		h.smsHistory.Add(entry)
		return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedSendTestSMS, err)
	}

	entry.Success = true
	h.smsHistory.Add(entry)

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSendTestSMS)
}

func (h *adminHandler) GetTestSMSHistory(c *fiber.Ctx) error {
	return presenters.SuccessResponse(c, fiber.Map{
		"history": h.smsHistory.Recent(),
	}, fiber.StatusOK, domain.MessageSuccessSendTestSMS)
}
