package routes

import (
	"github.com/gofiber/fiber/v2"

	"BloodLink/entities"
	"BloodLink/internal/api/handlers"
	"BloodLink/internal/middleware"
	"BloodLink/pkg/jwt"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	DonationHandler     handlers.DonationHandler
	InventoryHandler    handlers.InventoryHandler
	NotificationHandler handlers.NotificationHandler
	AdminHandler        handlers.AdminHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Donation()
	c.Hospital()
	c.Notification()
	c.Admin()
	c.GuestRoute()
}

func (c *Config) User() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)

	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register/donor", c.UserHandler.RegisterDonor)
		user.Post("/register/hospital", c.UserHandler.RegisterHospital)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", auth, c.UserHandler.Me)
		user.Get("/eligibility", auth, c.Middleware.OnlyRole(entities.RoleDonor), c.UserHandler.CheckEligibility)
		user.Patch("/donor-profile", auth, c.Middleware.OnlyRole(entities.RoleDonor), c.UserHandler.UpdateDonorProfile)
		user.Patch("/hospital-profile", auth, c.Middleware.OnlyRole(entities.RoleHospital), c.UserHandler.UpdateHospitalProfile)
	}
}

func (c *Config) Donation() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	donorOnly := c.Middleware.OnlyRole(entities.RoleDonor)
	hospitalOnly := c.Middleware.OnlyRole(entities.RoleHospital)

	donations := c.App.Group("/api/v1/donations", auth)
	{
		donations.Post("", donorOnly, c.DonationHandler.Submit)
		donations.Get("/mine", donorOnly, c.DonationHandler.GetDonorDonations)
		donations.Get("/statistics", donorOnly, c.DonationHandler.GetDonorStatistics)
		donations.Get("/:id", c.DonationHandler.GetDonationByID)
		donations.Post("/:id/approve", hospitalOnly, c.DonationHandler.Approve)
		donations.Post("/:id/reject", hospitalOnly, c.DonationHandler.Reject)
		donations.Post("/:id/cancel", donorOnly, c.DonationHandler.Cancel)
		donations.Post("/:id/complete", hospitalOnly, c.DonationHandler.Complete)
	}
}

func (c *Config) Hospital() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	donorOnly := c.Middleware.OnlyRole(entities.RoleDonor)
	hospitalOnly := c.Middleware.OnlyRole(entities.RoleHospital)

	hospital := c.App.Group("/api/v1/hospitals", auth)
	{
		// Donors discover which hospitals serve their pincode here.
		hospital.Get("", donorOnly, c.UserHandler.ListNearbyHospitals)
		hospital.Get("/donations", hospitalOnly, c.DonationHandler.GetHospitalDonations)
		hospital.Get("/statistics", hospitalOnly, c.DonationHandler.GetHospitalStatistics)
		hospital.Post("/broadcast", hospitalOnly, c.DonationHandler.BroadcastBloodRequest)
		hospital.Get("/inventory", hospitalOnly, c.InventoryHandler.GetHospitalInventory)
		hospital.Post("/inventory/debit", hospitalOnly, c.InventoryHandler.Debit)
	}
}

func (c *Config) Notification() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)

	notifications := c.App.Group("/api/v1/notifications", auth)
	{
		notifications.Get("", c.NotificationHandler.GetNotifications)
		notifications.Get("/unread-count", c.NotificationHandler.UnreadCount)
		notifications.Patch("/read-all", c.NotificationHandler.MarkAllRead)
		notifications.Patch("/:id/read", c.NotificationHandler.MarkRead)
	}
}

func (c *Config) Admin() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)

	admin := c.App.Group("/api/v1/admin", auth, c.Middleware.OnlyRole(entities.RoleAdmin))
	{
		admin.Get("/donors", c.AdminHandler.ListDonors)
		admin.Get("/hospitals", c.AdminHandler.ListHospitals)
		admin.Get("/donations", c.AdminHandler.ListDonations)
		admin.Post("/admins", c.AdminHandler.CreateAdmin)
		admin.Delete("/users/:id", c.AdminHandler.DeleteUser)
		admin.Get("/inventory", c.AdminHandler.GetAllInventory)
		admin.Post("/inventory/:id/adjust", c.AdminHandler.AdjustInventory)
		admin.Get("/inventory/:id/adjustments", c.AdminHandler.ListAdjustments)
		admin.Post("/test-sms", c.AdminHandler.SendTestSMS)
		admin.Get("/test-sms/history", c.AdminHandler.GetTestSMSHistory)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
