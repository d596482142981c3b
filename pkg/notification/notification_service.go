package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"BloodLink/domain"
	"BloodLink/entities"
)

type (
	// EmailSender delivers one email; implemented by the gomail mailer.
	EmailSender interface {
		SendMail(toEmail string, subject string, body string) error
	}

	// SMSSender delivers one SMS and returns the provider message id.
	SMSSender interface {
		SendSMS(to string, body string) (string, error)
	}

	// UserDirectory resolves the recipient and their channel preferences.
	UserDirectory interface {
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
	}

	NotificationService interface {
		Notify(ctx context.Context, req domain.NotifyRequest) (map[string]bool, error)
		ListUserNotifications(ctx context.Context, userID string, page, limit int) ([]*domain.NotificationResponse, int64, error)
		UnreadCount(ctx context.Context, userID string) (int64, error)
		MarkRead(ctx context.Context, notificationID, userID string) error
		MarkAllRead(ctx context.Context, userID string) error
	}

	notificationService struct {
		notificationRepository NotificationRepository
		users                  UserDirectory
		mailer                 EmailSender
		sms                    SMSSender
	}
)

func NewNotificationService(notificationRepository NotificationRepository, users UserDirectory, mailer EmailSender, sms SMSSender) NotificationService {
	return &notificationService{
		notificationRepository: notificationRepository,
		users:                  users,
		mailer:                 mailer,
		sms:                    sms,
	}
}

// Notify fans one logical event out to the requested channels. The system
// record is always persisted; email and SMS are best effort and a failed
// send is recorded on its own row without affecting any other channel or
// the caller.
func (s *notificationService) Notify(ctx context.Context, req domain.NotifyRequest) (map[string]bool, error) {
	userUUID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	user, err := s.users.GetUserByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	channels := req.Channels
	if len(channels) == 0 {
		channels = deriveChannels(user)
	}

	var relatedID *uuid.UUID
	if req.RelatedEntityID != "" {
		parsed, err := uuid.Parse(req.RelatedEntityID)
		if err != nil {
			return nil, domain.ErrParseUUID
		}
		relatedID = &parsed
	}

	results := make(map[string]bool, len(channels))

	// The system record is created regardless of the requested channel set
	// and is considered sent immediately.
	now := time.Now()
	systemRow := s.newRow(userUUID, req, entities.ChannelSystem, relatedID)
	systemRow.IsSent = true
	systemRow.SentAt = &now
	if err := s.notificationRepository.Create(ctx, systemRow); err != nil {
		return nil, err
	}
	results[entities.ChannelSystem] = true

	if contains(channels, entities.ChannelEmail) && user.Email != "" {
		results[entities.ChannelEmail] = s.sendEmail(ctx, user, req, relatedID)
	}

	if contains(channels, entities.ChannelSMS) && user.PhoneNumber != "" {
		results[entities.ChannelSMS] = s.sendSMS(ctx, user, req, relatedID)
	}

	return results, nil
}

func (s *notificationService) sendEmail(ctx context.Context, user *entities.User, req domain.NotifyRequest, relatedID *uuid.UUID) bool {
	row := s.newRow(user.ID, req, entities.ChannelEmail, relatedID)
	if err := s.notificationRepository.Create(ctx, row); err != nil {
		log.Errorf("persist email notification for user %s: %v", user.ID, err)
		return false
	}

	body := fmt.Sprintf("<p>%s</p>", req.Message)
	if err := s.mailer.SendMail(user.Email, req.Title, body); err != nil {
		log.Errorf("send email notification %s: %v", row.ID, err)
		return false
	}

	if err := s.notificationRepository.MarkSent(ctx, row.ID.String(), time.Now()); err != nil {
		log.Errorf("mark email notification %s sent: %v", row.ID, err)
	}
	return true
}

func (s *notificationService) sendSMS(ctx context.Context, user *entities.User, req domain.NotifyRequest, relatedID *uuid.UUID) bool {
	row := s.newRow(user.ID, req, entities.ChannelSMS, relatedID)
	if err := s.notificationRepository.Create(ctx, row); err != nil {
		log.Errorf("persist sms notification for user %s: %v", user.ID, err)
		return false
	}

	messageID, err := s.sms.SendSMS(user.PhoneNumber, fmt.Sprintf("%s: %s", req.Title, req.Message))
	if err != nil {
		log.Errorf("send sms notification %s: %v", row.ID, err)
		return false
	}
	log.Infof("sms notification %s delivered, message id %s", row.ID, messageID)

	if err := s.notificationRepository.MarkSent(ctx, row.ID.String(), time.Now()); err != nil {
		log.Errorf("mark sms notification %s sent: %v", row.ID, err)
	}
	return true
}

func (s *notificationService) newRow(userID uuid.UUID, req domain.NotifyRequest, channel string, relatedID *uuid.UUID) *entities.Notification {
	return &entities.Notification{
		ID:                uuid.New(),
		UserID:            userID,
		Title:             req.Title,
		Message:           req.Message,
		Type:              req.Type,
		DeliveryMethod:    channel,
		RelatedEntityType: req.RelatedEntityType,
		RelatedEntityID:   relatedID,
	}
}

// deriveChannels picks delivery channels from the recipient's profile:
// system always, email unless opted out, SMS only when opted in.
func deriveChannels(user *entities.User) []string {
	channels := []string{entities.ChannelSystem}

	emailOK := user.Email != ""
	smsOK := false
	if user.DonorProfile != nil {
		emailOK = emailOK && user.DonorProfile.EmailNotifications
		smsOK = user.PhoneNumber != "" && user.DonorProfile.SMSNotifications
	}

	if emailOK {
		channels = append(channels, entities.ChannelEmail)
	}
	if smsOK {
		channels = append(channels, entities.ChannelSMS)
	}
	return channels
}

func contains(channels []string, channel string) bool {
	for _, c := range channels {
		if c == channel {
			return true
		}
	}
	return false
}

func (s *notificationService) ListUserNotifications(ctx context.Context, userID string, page, limit int) ([]*domain.NotificationResponse, int64, error) {
	notifications, count, err := s.notificationRepository.ListByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, &domain.NotificationResponse{
			ID:             n.ID.String(),
			Title:          n.Title,
			Message:        n.Message,
			Type:           n.Type,
			DeliveryMethod: n.DeliveryMethod,
			IsSent:         n.IsSent,
			IsRead:         n.IsRead,
			CreatedAt:      n.CreatedAt,
			SentAt:         n.SentAt,
		})
	}
	return result, count, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.notificationRepository.UnreadCount(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID, userID string) error {
	notification, err := s.notificationRepository.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotificationNotFound
		}
		return err
	}

	if notification.UserID.String() != userID {
		return domain.ErrUserNotAllowed
	}

	return s.notificationRepository.MarkRead(ctx, notificationID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.notificationRepository.MarkAllRead(ctx, userID)
}
