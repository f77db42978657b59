package utils

import (
	"context"
	"fmt"
	"html"
	"strings"

	"frozo-api/config"
	"frozo-api/logger"
	"frozo-api/models"

	"github.com/keighl/postmark"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Email is a provider-neutral outgoing message.
type Email struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
	ReplyTo string
}

type sendgridSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendgridMailer handles sending emails using SendGrid
type SendgridMailer struct {
	client     sendgridSender
	senderAddr string
	senderName string
}

func NewSendgridMailer(apiKey, senderAddr, senderName string) *SendgridMailer {
	return &SendgridMailer{
		client:     sendgrid.NewSendClient(apiKey),
		senderAddr: senderAddr,
		senderName: senderName,
	}
}

func (m *SendgridMailer) Send(ctx context.Context, email Email) error {
	from := mail.NewEmail(m.senderName, m.senderAddr)
	to := mail.NewEmail(email.ToName, email.To)
	message := mail.NewSingleEmail(from, email.Subject, to, email.Text, email.HTML)
	if email.ReplyTo != "" {
		message.SetReplyTo(mail.NewEmail("", email.ReplyTo))
	}

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("failed to send email: sendgrid status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

type postmarkSender interface {
	SendEmail(email postmark.Email) (postmark.EmailResponse, error)
}

// PostmarkMailer handles sending emails using Postmark
type PostmarkMailer struct {
	client     postmarkSender
	senderAddr string
}

func NewPostmarkMailer(serverToken, senderAddr string) *PostmarkMailer {
	return &PostmarkMailer{
		client:     postmark.NewClient(serverToken, ""),
		senderAddr: senderAddr,
	}
}

// Send ignores ctx; the postmark client has no context support.
func (m *PostmarkMailer) Send(ctx context.Context, email Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	to := email.To
	if email.ToName != "" {
		to = fmt.Sprintf("%s <%s>", email.ToName, email.To)
	}
	_, err := m.client.SendEmail(postmark.Email{
		From:     m.senderAddr,
		To:       to,
		Subject:  email.Subject,
		HtmlBody: email.HTML,
		TextBody: email.Text,
		ReplyTo:  email.ReplyTo,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// NoopMailer logs outgoing mail instead of delivering it.
type NoopMailer struct {
	log *logger.Logger
}

func NewNoopMailer(log *logger.Logger) *NoopMailer {
	return &NoopMailer{log: log}
}

func (m *NoopMailer) Send(ctx context.Context, email Email) error {
	ctx = m.log.WithFields(ctx, map[string]any{"to": email.To, "subject": email.Subject})
	m.log.Debug(ctx, "email delivery disabled, dropping message")
	return nil
}

type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// NewMailer picks the delivery provider named by cfg.Provider.
func NewMailer(cfg config.EmailConfig, log *logger.Logger) (Mailer, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "none":
		return NewNoopMailer(log), nil
	case "sendgrid":
		return NewSendgridMailer(cfg.SendgridAPIKey, cfg.Sender, cfg.SenderName), nil
	case "postmark":
		return NewPostmarkMailer(cfg.PostmarkToken, cfg.Sender), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}

// ContactNotificationEmail tells the store inbox about a new contact submission.
func ContactNotificationEmail(inbox string, msg models.ContactMessage) Email {
	phone := msg.Phone
	if phone == "" {
		phone = "not provided"
	}
	htmlContent := fmt.Sprintf(
		"<strong>New contact message</strong><br><br>From: %s &lt;%s&gt;<br>Phone: %s<br>Subject: %s<br><br>%s",
		html.EscapeString(msg.Name),
		html.EscapeString(msg.Email),
		html.EscapeString(phone),
		html.EscapeString(msg.Subject),
		strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>"),
	)
	text := fmt.Sprintf("New contact message\n\nFrom: %s <%s>\nPhone: %s\nSubject: %s\n\n%s",
		msg.Name, msg.Email, phone, msg.Subject, msg.Message)

	return Email{
		To:      inbox,
		Subject: "New contact message: " + msg.Subject,
		HTML:    htmlContent,
		Text:    text,
		ReplyTo: msg.Email,
	}
}

// ContactAcknowledgementEmail confirms receipt to the person who wrote in.
func ContactAcknowledgementEmail(msg models.ContactMessage) Email {
	htmlContent := fmt.Sprintf(
		"<strong>Hi %s,</strong><br><br>Thanks for reaching out to Frozo. We received your message about <strong>%s</strong> and will get back to you soon.",
		html.EscapeString(msg.Name),
		html.EscapeString(msg.Subject),
	)
	text := fmt.Sprintf("Hi %s,\n\nThanks for reaching out to Frozo. We received your message about %q and will get back to you soon.",
		msg.Name, msg.Subject)

	return Email{
		To:      msg.Email,
		ToName:  msg.Name,
		Subject: "We received your message",
		HTML:    htmlContent,
		Text:    text,
	}
}
