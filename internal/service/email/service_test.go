package email

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leander-social/internal/config"
)

func TestRenderWelcome(t *testing.T) {
	svc := NewService(&config.Config{Domain: "social.test"}, zerolog.Nop()).(*service)

	body, err := svc.render("welcome.html", struct {
		Title string
		Name  string
		Nick  string
		Link  string
	}{Title: "Bienvenido", Name: "Ana", Nick: "ana", Link: "https://social.test/login"})

	require.NoError(t, err)
	assert.Contains(t, body, "Hola Ana")
	assert.Contains(t, body, "@ana")
	assert.Contains(t, body, "https://social.test/login")
}

func TestSendWelcomeEmail_WithoutAPIKeySkipsDelivery(t *testing.T) {
	svc := NewService(&config.Config{Domain: "social.test", FromEmail: "noreply@social.test"}, zerolog.Nop())

	err := svc.SendWelcomeEmail(context.Background(), "ana@social.test", "Ana", "ana")

	assert.NoError(t, err)
}
