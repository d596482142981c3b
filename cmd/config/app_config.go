package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"BloodLink/internal/api/handlers"
	"BloodLink/internal/api/routes"
	"BloodLink/internal/middleware"
	"BloodLink/internal/utils"
	"BloodLink/internal/utils/mailing"
	"BloodLink/internal/utils/sms"
	"BloodLink/pkg/donation"
	"BloodLink/pkg/inventory"
	"BloodLink/pkg/jwt"
	"BloodLink/pkg/notification"
	"BloodLink/pkg/scheduler"
	"BloodLink/pkg/user"
)

// App bundles the configured fiber server with the background reminder
// scheduler so main can start both.
type App struct {
	Server    *fiber.App
	Scheduler *scheduler.ReminderScheduler
}

func NewApp(db *gorm.DB, cfg *utils.Config) (*App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	mailer := mailing.NewMailer(mailing.MailConfig{
		SMTPHost:     cfg.SMTPHost,
		SMTPPort:     cfg.SMTPPort,
		SMTPSender:   cfg.SMTPSenderName,
		SMTPEmail:    cfg.SMTPAuthEmail,
		SMTPPassword: cfg.SMTPAuthPassword,
	})
	smsClient := sms.NewClient(cfg.SMSAPIURL, cfg.SMSAPIKey, cfg.SMSSenderNum)
	smsHistory := sms.NewHistory(0)

	// Repository
	userRepository := user.NewUserRepository(db)
	donationRepository := donation.NewDonationRepository(db)
	inventoryRepository := inventory.NewInventoryRepository(db)
	notificationRepository := notification.NewNotificationRepository(db)

	// Service
	jwtService := jwt.NewJWTService(cfg.JWTSecret)
	userService := user.NewUserService(userRepository, inventoryRepository, jwtService)
	inventoryService := inventory.NewInventoryService(inventoryRepository)
	notificationService := notification.NewNotificationService(notificationRepository, userRepository, mailer, smsClient)
	donationService := donation.NewDonationService(donationRepository, userRepository, notificationService)
	reminderScheduler := scheduler.NewReminderScheduler(donationRepository, notificationService, nil)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	donationHandler := handlers.NewDonationHandler(donationService, validator)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, userRepository, validator)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	adminHandler := handlers.NewAdminHandler(userService, donationService, inventoryService, smsClient, smsHistory, validator)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         userHandler,
		DonationHandler:     donationHandler,
		InventoryHandler:    inventoryHandler,
		NotificationHandler: notificationHandler,
		AdminHandler:        adminHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()

	return &App{
		Server:    app,
		Scheduler: reminderScheduler,
	}, nil
}
