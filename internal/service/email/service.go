package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"
	"github.com/rs/zerolog"

	"leander-social/internal/config"
)

//go:embed templates/*.html
var templateFiles embed.FS

type Service interface {
	SendWelcomeEmail(ctx context.Context, toEmail, name, nick string) error
}

type service struct {
	client *resend.Client
	config *config.Config
	logger zerolog.Logger
}

func NewService(cfg *config.Config, logger zerolog.Logger) Service {
	var client *resend.Client
	if cfg.ResendAPIKey != "" {
		client = resend.NewClient(cfg.ResendAPIKey)
	}
	return &service{
		client: client,
		config: cfg,
		logger: logger.With().Str("component", "email").Logger(),
	}
}

func (s *service) render(templateName string, data interface{}) (string, error) {
	tmpl, err := template.ParseFS(templateFiles, "templates/layout.html", "templates/"+templateName)
	if err != nil {
		return "", fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&body, "layout", data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

func (s *service) sendEmail(ctx context.Context, toEmail, subject, templateName string, data interface{}) error {
	body, err := s.render(templateName, data)
	if err != nil {
		return err
	}

	if s.client == nil {
		s.logger.Debug().Str("to", toEmail).Str("subject", subject).Msg("email delivery disabled, skipping")
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Leander Social <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body,
		Subject: subject,
	}

	_, err = s.client.Emails.Send(params)
	return err
}

func (s *service) SendWelcomeEmail(ctx context.Context, toEmail, name, nick string) error {
	data := struct {
		Title string
		Name  string
		Nick  string
		Link  string
	}{
		Title: "Bienvenido a Leander Social",
		Name:  name,
		Nick:  nick,
		Link:  fmt.Sprintf("https://%s/login", s.config.Domain),
	}
	return s.sendEmail(ctx, toEmail, "¡Bienvenido a Leander Social!", "welcome.html", data)
}
