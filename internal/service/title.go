package service

const maxTitleLength = 50

// DeriveTitle turns a first user message into a session title: the
// first 50 characters, with an ellipsis marker when truncated.
func DeriveTitle(text string) string {
	runes := []rune(text)
	if len(runes) <= maxTitleLength {
		return text
	}
	return string(runes[:maxTitleLength]) + "..."
}
