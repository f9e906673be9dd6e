package email

// PreviewData holds sample data per template for local previews.
var PreviewData = map[Template]any{
	TemplateFeedbackReceived: FeedbackReceivedData{
		FeedbackID: "0b7e6a52-3c2f-4a4e-9d1c-5f0a2b8e9c11",
		MemberID:   "user_2abc",
		Category:   "bug",
		Content:    "The app crashes when I open my order history.",
		Contact:    "member@example.com",
		CreatedAt:  "2026-01-02T15:04:05Z",
	},
}

// Preview renders name with its sample data.
func Preview(name Template) (string, error) {
	return Render(name, PreviewData[name])
}
