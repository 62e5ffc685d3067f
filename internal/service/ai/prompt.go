package ai

import (
	"fmt"
	"strings"

	"localchat/internal/models"
)

const (
	contextHeader = "\n\n=== UPLOADED FILE CONTEXT ===\n"
	contextFooter = "=== END FILE CONTEXT ===\n\n"

	// Per-file raw content above this many characters is replaced with a
	// placeholder; below it, at most contentSnippet characters are inlined.
	maxInlineContent = 5000
	contentSnippet   = 2000
)

// ComposePrompt merges the accumulated file contexts with the current user
// message. With no contexts the message passes through unchanged. Pure
// function of its inputs.
func ComposePrompt(message string, contexts []models.FileContext) string {
	if len(contexts) == 0 {
		return message
	}

	var b strings.Builder
	b.WriteString(contextHeader)
	for _, fc := range contexts {
		fmt.Fprintf(&b, "\nFile: %s (%s)\n", fc.FileName, fc.FileType)
		runes := []rune(fc.RawContent)
		if fc.RawContent != "" && len(runes) < maxInlineContent {
			snippet := fc.RawContent
			if len(runes) > contentSnippet {
				snippet = string(runes[:contentSnippet]) + "..."
			}
			fmt.Fprintf(&b, "Content: %s\n", snippet)
		} else {
			b.WriteString("Content: [Binary file or content too large]\n")
		}
	}
	b.WriteString(contextFooter)
	b.WriteString("User Question: ")
	b.WriteString(message)
	return b.String()
}
