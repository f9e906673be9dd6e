package email

import (
	"errors"
	"testing"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	requests []*resend.SendEmailRequest
	err      error
}

func (f *fakeSender) Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.requests = append(f.requests, params)
	if f.err != nil {
		return nil, f.err
	}
	return &resend.SendEmailResponse{Id: "email_1"}, nil
}

func TestPreview(t *testing.T) {
	body, err := Preview(TemplateFeedbackReceived)
	require.NoError(t, err)

	assert.Contains(t, body, "New bug feedback")
	assert.Contains(t, body, "member@example.com")
}

func TestRender_EscapesContent(t *testing.T) {
	body, err := Render(TemplateFeedbackReceived, FeedbackReceivedData{
		Category: "other",
		Content:  "<script>alert(1)</script>",
	})
	require.NoError(t, err)

	assert.NotContains(t, body, "<script>")
	assert.NotContains(t, body, "Contact")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Render("missing", nil)
	assert.Error(t, err)
}

func TestSendFeedbackNotification(t *testing.T) {
	sender := &fakeSender{}
	logger := zerolog.Nop()
	client := NewClientWithSender(sender, &logger)

	err := client.SendFeedbackNotification("inbox@example.com", FeedbackReceivedData{
		FeedbackID: "f1",
		Category:   "suggestion",
		Content:    "Add dark mode",
	})
	require.NoError(t, err)

	require.Len(t, sender.requests, 1)
	req := sender.requests[0]
	assert.Equal(t, []string{"inbox@example.com"}, req.To)
	assert.Equal(t, "New suggestion feedback", req.Subject)
	assert.Equal(t, "Mobile API <onboarding@resend.dev>", req.From)
	assert.Contains(t, req.Html, "Add dark mode")
}

func TestSendEmail_ProviderError(t *testing.T) {
	sender := &fakeSender{err: errors.New("rate limited")}
	logger := zerolog.Nop()
	client := NewClientWithSender(sender, &logger)

	err := client.SendFeedbackNotification("inbox@example.com", FeedbackReceivedData{Category: "bug"})
	assert.ErrorContains(t, err, "failed to send email")
}
