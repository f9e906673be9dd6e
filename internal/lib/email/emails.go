package email

import "fmt"

// FeedbackReceivedData is the data available to the feedback_received template.
type FeedbackReceivedData struct {
	FeedbackID string
	MemberID   string
	Category   string
	Content    string
	Contact    string
	CreatedAt  string
}

// SendFeedbackNotification tells the feedback inbox about a new item.
func (c *Client) SendFeedbackNotification(to string, data FeedbackReceivedData) error {
	return c.SendEmail(
		to,
		fmt.Sprintf("New %s feedback", data.Category),
		TemplateFeedbackReceived,
		data,
	)
}
