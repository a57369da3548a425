package email

import (
	"errors"
	"testing"

	"github.com/deppfellow/employee-directory/internal/config"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// previewData holds sample values for rendering each template.
var previewData = map[Template]any{
	TemplateWelcome: WelcomeData{
		Name:          "Jane Doe",
		Department:    "Engineering",
		Designation:   "Software Engineer",
		DateOfJoining: "2024-01-15",
	},
}

type fakeSender struct {
	sent []*resend.SendEmailRequest
	err  error
}

func (f *fakeSender) Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.sent = append(f.sent, params)
	if f.err != nil {
		return nil, f.err
	}
	return &resend.SendEmailResponse{Id: "msg_1"}, nil
}

func TestRender_Welcome(t *testing.T) {
	t.Parallel()

	html, err := Render(TemplateWelcome, previewData[TemplateWelcome])
	require.NoError(t, err)
	assert.Contains(t, html, "Welcome aboard, Jane Doe!")
	assert.Contains(t, html, "2024-01-15")
}

func TestRender_EscapesHTML(t *testing.T) {
	t.Parallel()

	html, err := Render(TemplateWelcome, WelcomeData{Name: "<script>x</script>"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestSendWelcomeEmail(t *testing.T) {
	t.Parallel()

	log := zerolog.Nop()
	sender := &fakeSender{}
	client := NewClientWithSender(sender, DefaultFrom, &log)

	require.NoError(t, client.SendWelcomeEmail("ada@example.com", WelcomeData{Name: "Ada"}))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"ada@example.com"}, sender.sent[0].To)
	assert.Equal(t, "Welcome to the team, Ada!", sender.sent[0].Subject)
	assert.Equal(t, DefaultFrom, sender.sent[0].From)
}

func TestSendEmail_ProviderError(t *testing.T) {
	t.Parallel()

	log := zerolog.Nop()
	client := NewClientWithSender(&fakeSender{err: errors.New("rate limited")}, DefaultFrom, &log)

	err := client.SendWelcomeEmail("ada@example.com", WelcomeData{Name: "Ada"})
	assert.ErrorContains(t, err, "rate limited")
}

func TestNewClient_WithoutKeyIsNoop(t *testing.T) {
	t.Parallel()

	log := zerolog.Nop()
	client := NewClient(&config.Config{}, &log)

	assert.Nil(t, client.sender)
	assert.Equal(t, DefaultFrom, client.from)
	assert.NoError(t, client.SendWelcomeEmail("ada@example.com", WelcomeData{Name: "Ada"}))
}
