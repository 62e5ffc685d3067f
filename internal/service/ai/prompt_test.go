package ai

import (
	"strings"
	"testing"

	"localchat/internal/models"
)

func TestComposePromptIdentityWithoutContext(t *testing.T) {
	msg := "what is the capital of France?"
	if got := ComposePrompt(msg, nil); got != msg {
		t.Fatalf("expected identity, got %q", got)
	}
	if got := ComposePrompt(msg, []models.FileContext{}); got != msg {
		t.Fatalf("expected identity for empty slice, got %q", got)
	}
}

func TestComposePromptWithContext(t *testing.T) {
	msg := "summarize the notes"
	contexts := []models.FileContext{{
		FileName:   "notes.txt",
		FileType:   "text/plain",
		RawContent: "meeting at noon",
	}}
	got := ComposePrompt(msg, contexts)
	for _, want := range []string{
		"=== UPLOADED FILE CONTEXT ===",
		"=== END FILE CONTEXT ===",
		"File: notes.txt (text/plain)",
		"Content: meeting at noon",
		"User Question: " + msg,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("prompt missing %q:\n%s", want, got)
		}
	}
}

func TestComposePromptTruncatesLongContent(t *testing.T) {
	contexts := []models.FileContext{{
		FileName:   "long.txt",
		FileType:   "text/plain",
		RawContent: strings.Repeat("a", 3000),
	}}
	got := ComposePrompt("q", contexts)
	if !strings.Contains(got, strings.Repeat("a", 2000)+"...") {
		t.Fatalf("expected 2000-char snippet with ellipsis")
	}
	if strings.Contains(got, strings.Repeat("a", 2001)) {
		t.Fatalf("snippet exceeds cap")
	}
}

func TestComposePromptSkipsOversizedContent(t *testing.T) {
	contexts := []models.FileContext{{
		FileName:   "huge.txt",
		FileType:   "text/plain",
		RawContent: strings.Repeat("b", 6000),
	}}
	got := ComposePrompt("q", contexts)
	if !strings.Contains(got, "Content: [Binary file or content too large]") {
		t.Fatalf("expected too-large placeholder:\n%s", got)
	}
	if strings.Contains(got, "bbbb") {
		t.Fatalf("oversized content must not be inlined")
	}
}

func TestComposePromptBinaryMarker(t *testing.T) {
	contexts := []models.FileContext{{
		FileName:   "photo.png",
		FileType:   "image/png",
		RawContent: "Binary file: photo.png, Type: image/png, Size: 123 bytes",
	}}
	got := ComposePrompt("q", contexts)
	if !strings.Contains(got, "Content: Binary file: photo.png") {
		t.Fatalf("expected binary marker inline:\n%s", got)
	}
}
