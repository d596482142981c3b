package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"BloodLink/domain"
	"BloodLink/internal/api/presenters"
	"BloodLink/pkg/user"
)

type (
	UserHandler interface {
		RegisterDonor(c *fiber.Ctx) error
		RegisterHospital(c *fiber.Ctx) error
		Login(c *fiber.Ctx) error
		Me(c *fiber.Ctx) error
		CheckEligibility(c *fiber.Ctx) error
		ListNearbyHospitals(c *fiber.Ctx) error
		UpdateDonorProfile(c *fiber.Ctx) error
		UpdateHospitalProfile(c *fiber.Ctx) error
	}

	userHandler struct {
		userService user.UserService
		validator   *validator.Validate
	}
)

func NewUserHandler(userService user.UserService, validator *validator.Validate) UserHandler {
	return &userHandler{
		userService: userService,
		validator:   validator,
	}
}

func (h *userHandler) RegisterDonor(c *fiber.Ctx) error {
	req := new(domain.RegisterDonorRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRegister, err)
	}

	donor, err := h.userService.RegisterDonor(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedRegister, err)
	}

	return presenters.SuccessResponse(c, donor, fiber.StatusCreated, domain.MessageSuccessRegister)
}

func (h *userHandler) RegisterHospital(c *fiber.Ctx) error {
	req := new(domain.RegisterHospitalRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRegister, err)
	}

	hospital, err := h.userService.RegisterHospital(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedRegister, err)
	}

	return presenters.SuccessResponse(c, hospital, fiber.StatusCreated, domain.MessageSuccessRegister)
}

func (h *userHandler) Login(c *fiber.Ctx) error {
	req := new(domain.LoginRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedLogin, err)
	}

	resp, err := h.userService.Login(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedLogin, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessLogin)
}

func (h *userHandler) Me(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	me, err := h.userService.Me(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetMe, err)
	}

	return presenters.SuccessResponse(c, me, fiber.StatusOK, domain.MessageSuccessGetMe)
}

func (h *userHandler) CheckEligibility(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	eligible, reason, err := h.userService.CheckEligibility(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetMe, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"eligible": eligible,
		"reason":   reason,
	}, fiber.StatusOK, domain.MessageSuccessCheckEligibility)
}

func (h *userHandler) ListNearbyHospitals(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	hospitals, err := h.userService.ListNearbyHospitals(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetHospitals, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"hospitals": hospitals,
	}, fiber.StatusOK, domain.MessageSuccessGetHospitals)
}

func (h *userHandler) UpdateDonorProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.UpdateDonorProfileRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateProfile, err)
	}

	donor, err := h.userService.UpdateDonorProfile(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUpdateProfile, err)
	}

	return presenters.SuccessResponse(c, donor, fiber.StatusOK, domain.MessageSuccessUpdateProfile)
}

func (h *userHandler) UpdateHospitalProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.UpdateHospitalProfileRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateProfile, err)
	}

	hospital, err := h.userService.UpdateHospitalProfile(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUpdateProfile, err)
	}

	return presenters.SuccessResponse(c, hospital, fiber.StatusOK, domain.MessageSuccessUpdateProfile)
}
