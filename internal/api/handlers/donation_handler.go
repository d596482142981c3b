package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"BloodLink/domain"
	"BloodLink/internal/api/presenters"
	"BloodLink/pkg/donation"
)

type (
	DonationHandler interface {
		Submit(c *fiber.Ctx) error
		Approve(c *fiber.Ctx) error
		Reject(c *fiber.Ctx) error
		Cancel(c *fiber.Ctx) error
		Complete(c *fiber.Ctx) error
		GetDonationByID(c *fiber.Ctx) error
		GetDonorDonations(c *fiber.Ctx) error
		GetHospitalDonations(c *fiber.Ctx) error
		GetDonorStatistics(c *fiber.Ctx) error
		GetHospitalStatistics(c *fiber.Ctx) error
		BroadcastBloodRequest(c *fiber.Ctx) error
	}

	donationHandler struct {
		donationService donation.DonationService
		validator       *validator.Validate
	}
)

func NewDonationHandler(donationService donation.DonationService, validator *validator.Validate) DonationHandler {
	return &donationHandler{
		donationService: donationService,
		validator:       validator,
	}
}

func (h *donationHandler) Submit(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.CreateDonationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateDonation, err)
	}

	created, err := h.donationService.Submit(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedCreateDonation, err)
	}

	return presenters.SuccessResponse(c, created, fiber.StatusCreated, domain.MessageSuccessCreateDonation)
}

func (h *donationHandler) Approve(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	donationID := c.Params("id")

	if err := h.donationService.Approve(c.Context(), donationID, userID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedApproveDonation, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessApproveDonation)
}

func (h *donationHandler) Reject(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	donationID := c.Params("id")

	if err := h.donationService.Reject(c.Context(), donationID, userID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedRejectDonation, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRejectDonation)
}

func (h *donationHandler) Cancel(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	donationID := c.Params("id")

	if err := h.donationService.Cancel(c.Context(), donationID, userID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedCancelDonation, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCancelDonation)
}

func (h *donationHandler) Complete(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	donationID := c.Params("id")

	if err := h.donationService.Complete(c.Context(), donationID, userID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedCompleteDonation, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCompleteDonation)
}

func (h *donationHandler) GetDonationByID(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	donationID := c.Params("id")

	result, err := h.donationService.GetDonationByID(c.Context(), donationID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) GetDonorDonations(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	page, limit := pagination(c)

	donations, count, err := h.donationService.GetDonorDonations(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"donations":  donations,
		"pagination": paginationMap(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) GetHospitalDonations(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	status := c.Query("status")
	page, limit := pagination(c)

	donations, count, err := h.donationService.GetHospitalDonations(c.Context(), userID, status, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"donations":  donations,
		"pagination": paginationMap(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) GetDonorStatistics(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	stats, err := h.donationService.GetDonorStatistics(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) GetHospitalStatistics(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	stats, err := h.donationService.GetHospitalStatistics(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) BroadcastBloodRequest(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.BroadcastBloodRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBroadcastRequest, err)
	}

	result, err := h.donationService.BroadcastBloodRequest(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedBroadcastRequest, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessBroadcastRequest)
}
