package classifier

import (
	"math/rand"
	"strings"
	"testing"
)

func TestClassifyTextNeverEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		raw := make([]byte, rng.Intn(4096))
		rng.Read(raw)
		c := Classify(raw, "garbage.txt", "text/plain")
		if c.Summary == "" {
			t.Fatalf("empty summary for random input of %d bytes", len(raw))
		}
		if !c.TextLike {
			t.Fatalf("expected text classification for .txt name")
		}
	}
}

func TestClassifyCSV(t *testing.T) {
	c := Classify([]byte("a,b,c\n1,2,3\n4,5,6"), "report.csv", "text/csv")
	if !strings.Contains(c.Summary, "**Columns (3):** a, b, c") {
		t.Fatalf("expected 3 columns in summary, got:\n%s", c.Summary)
	}
	if !strings.Contains(c.Summary, "**Rows:** 2") {
		t.Fatalf("expected 2 rows in summary, got:\n%s", c.Summary)
	}
	if c.RawContent != "a,b,c\n1,2,3\n4,5,6" {
		t.Fatalf("raw content mismatch: %q", c.RawContent)
	}
}

func TestClassifyPython(t *testing.T) {
	src := "import os\nfrom sys import argv\n\nclass Greeter(object):\n    def hello(self):\n        pass\n\ndef main():\n    pass\n"
	c := Classify([]byte(src), "app.py", "text/x-python")
	for _, want := range []string{
		"**Imports (2):** import os, from sys import argv",
		"**Classes (1):** Greeter",
		"**Functions (2):** hello, main",
		"**Total Lines:**",
	} {
		if !strings.Contains(c.Summary, want) {
			t.Fatalf("summary missing %q:\n%s", want, c.Summary)
		}
	}
}

func TestClassifyJSONObject(t *testing.T) {
	c := Classify([]byte(`{"b": 1, "a": [1, 2]}`), "data.json", "application/json")
	if !strings.Contains(c.Summary, "**Structure:** object") {
		t.Fatalf("expected object structure:\n%s", c.Summary)
	}
	if !strings.Contains(c.Summary, "**Keys (2):** a, b") {
		t.Fatalf("expected sorted keys:\n%s", c.Summary)
	}
}

func TestClassifyJSONInvalidFallsBackToPreview(t *testing.T) {
	c := Classify([]byte("{not json"), "broken.json", "application/json")
	if strings.Contains(c.Summary, "JSON File Analysis") {
		t.Fatalf("should not analyze invalid JSON:\n%s", c.Summary)
	}
	if !strings.Contains(c.Summary, "Content Preview") {
		t.Fatalf("expected preview section:\n%s", c.Summary)
	}
}

func TestClassifyTextTruncation(t *testing.T) {
	content := strings.Repeat("x", 5000)
	c := Classify([]byte(content), "big.txt", "text/plain")
	if !strings.Contains(c.Summary, "Showing first 3000 characters of 5000 total characters") {
		t.Fatalf("expected truncation note:\n%s", c.Summary[len(c.Summary)-200:])
	}
	if c.RawContent != content {
		t.Fatalf("raw content must not be truncated, got %d chars", len(c.RawContent))
	}
}

func TestClassifyImage(t *testing.T) {
	c := Classify([]byte{0x89, 'P', 'N', 'G'}, "photo.png", "image/png")
	if !strings.Contains(c.Summary, "Image uploaded successfully") {
		t.Fatalf("expected image summary:\n%s", c.Summary)
	}
	if !strings.HasPrefix(c.RawContent, "Binary file: photo.png") {
		t.Fatalf("expected binary marker, got %q", c.RawContent)
	}
}

func TestClassifyPDFVersion(t *testing.T) {
	c := Classify([]byte("%PDF-1.7\nrest of file"), "doc.pdf", "application/pdf")
	if !strings.Contains(c.Summary, "PDF uploaded successfully") {
		t.Fatalf("expected pdf summary:\n%s", c.Summary)
	}
	if !strings.Contains(c.Summary, "%PDF-1.7") {
		t.Fatalf("expected version probe in summary:\n%s", c.Summary)
	}
}

func TestClassifyGenericSniff(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want string
	}{
		{"archive.bin", []byte("PK\x03\x04rest"), "Archive/Compressed file detected"},
		{"page.bin", []byte("   <!DOCTYPE html><html>"), "HTML content detected"},
		{"pic.bin", []byte("\xff\xd8\xffJFIF"), "Image file detected"},
		{"doc.bin", []byte("%PDF-1.4"), "PDF document detected"},
	}
	for _, tt := range tests {
		c := Classify(tt.raw, tt.name, "application/octet-stream")
		if !strings.Contains(c.Summary, tt.want) {
			t.Fatalf("%s: summary missing %q:\n%s", tt.name, tt.want, c.Summary)
		}
	}
}

func TestDecodeTextWindows1252(t *testing.T) {
	// Smart quotes from a legacy Windows editor.
	raw := []byte{0x93, 'h', 'i', 0x94}
	got := DecodeText(raw)
	if got != "\u201chi\u201d" {
		t.Fatalf("expected smart quotes, got %q", got)
	}
}

func TestDecodeTextBOM(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello")...)
	if got := DecodeText(raw); !strings.Contains(got, "hello") {
		t.Fatalf("expected hello, got %q", got)
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0.0 B"},
		{1023, "1023.0 B"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{5 << 30, "5.0 GB"},
		{3 << 40, "3.0 TB"},
	}
	for _, tt := range tests {
		if got := FormatFileSize(tt.n); got != tt.want {
			t.Fatalf("FormatFileSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
