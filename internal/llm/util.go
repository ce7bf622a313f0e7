package llm

import "strings"

// CleanJSONBlock strips markdown code-fence wrappers from a model reply.
// Structured-output mode should make fences impossible, but models still
// emit them occasionally, so every JSON response passes through here
// before validation.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
