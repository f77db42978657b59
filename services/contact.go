package services

import (
	"context"
	"strings"
	"time"

	"frozo-api/apperrors"
	"frozo-api/logger"
	"frozo-api/models"
	"frozo-api/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContactInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"max=30"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

const contactMailTimeout = 15 * time.Second

type ContactService struct {
	messages ContactStore
	mailer   Mailer
	inbox    string
	log      *logger.Logger
	dispatch func(func())
	now      func() time.Time
}

// NewContactService stores submissions and emails the shop inbox plus an
// acknowledgement to the sender. inbox may be empty to skip the shop notification.
func NewContactService(messages ContactStore, mailer Mailer, inbox string, log *logger.Logger) *ContactService {
	return &ContactService{
		messages: messages,
		mailer:   mailer,
		inbox:    strings.TrimSpace(inbox),
		log:      log,
		dispatch: func(fn func()) { go fn() },
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Submit persists the message and returns before any email is sent. Delivery
// failures are logged and never surface to the caller.
func (s *ContactService) Submit(ctx context.Context, in ContactInput) (*models.ContactMessage, error) {
	msg := &models.ContactMessage{
		Name:      strings.TrimSpace(in.Name),
		Email:     normalizeEmail(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Subject:   strings.TrimSpace(in.Subject),
		Message:   strings.TrimSpace(in.Message),
		CreatedAt: s.now(),
	}
	switch {
	case msg.Name == "":
		return nil, apperrors.Validation("name is required")
	case msg.Email == "":
		return nil, apperrors.Validation("email is required")
	case msg.Subject == "":
		return nil, apperrors.Validation("subject is required")
	case msg.Message == "":
		return nil, apperrors.Validation("message is required")
	}

	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	if s.mailer != nil {
		snapshot := *msg
		mailCtx := context.WithoutCancel(ctx)
		s.dispatch(func() { s.notify(mailCtx, snapshot) })
	}
	return msg, nil
}

func (s *ContactService) notify(ctx context.Context, msg models.ContactMessage) {
	ctx, cancel := context.WithTimeout(ctx, contactMailTimeout)
	defer cancel()
	ctx = s.log.WithField(ctx, "contact_id", msg.ID.Hex())

	if s.inbox != "" {
		if err := s.mailer.Send(ctx, utils.ContactNotificationEmail(s.inbox, msg)); err != nil {
			s.log.Error(ctx, "failed to send contact notification", err)
		}
	}
	if err := s.mailer.Send(ctx, utils.ContactAcknowledgementEmail(msg)); err != nil {
		s.log.Warn(ctx, "failed to send contact acknowledgement", err)
	}
}

func (s *ContactService) List(ctx context.Context, unreadOnly bool) ([]models.ContactMessage, error) {
	messages, err := s.messages.List(ctx, unreadOnly)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []models.ContactMessage{}
	}
	return messages, nil
}

func (s *ContactService) MarkRead(ctx context.Context, id string) (*models.ContactMessage, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, apperrors.NotFound("message not found")
	}
	return s.messages.MarkRead(ctx, oid)
}
