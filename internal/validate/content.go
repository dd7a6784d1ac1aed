package validate

// Content validates page body size. Format is not checked: bodies are opaque
// and may be markdown, HTML or plain text. maxLen 0 means no limit.
func Content(content string, maxLen int64) error {
	if maxLen > 0 && int64(len(content)) > maxLen {
		return ErrContentTooLarge
	}
	return nil
}
