package classifier

import "bytes"

const sniffLimit = 1024

type signature struct {
	note  string
	match func(sample []byte) bool
}

func hasPrefix(prefixes ...[]byte) func([]byte) bool {
	return func(sample []byte) bool {
		for _, p := range prefixes {
			if bytes.HasPrefix(sample, p) {
				return true
			}
		}
		return false
	}
}

// Checked in order; the zip family covers office and archive containers.
var signatures = []signature{
	{
		note:  "🗜️ **Archive/Compressed file detected**\n",
		match: hasPrefix([]byte("PK\x03\x04"), []byte("PK\x05\x06"), []byte("PK\x07\x08")),
	},
	{
		note: "🌐 **HTML content detected**\n",
		match: func(sample []byte) bool {
			lower := bytes.ToLower(sample)
			return bytes.Contains(lower, []byte("<html")) || bytes.Contains(lower, []byte("<!doctype"))
		},
	},
	{
		note:  "🖼️ **Image file detected**\n",
		match: hasPrefix([]byte("\x89PNG"), []byte("\xff\xd8\xff")),
	},
	{
		note:  "📄 **PDF document detected**\n",
		match: hasPrefix([]byte("%PDF")),
	},
}

// SniffNote matches the first 1KB of raw against known magic-number
// signatures and returns an annotation line, or "" when nothing matched.
func SniffNote(raw []byte) string {
	sample := raw
	if len(sample) > sniffLimit {
		sample = sample[:sniffLimit]
	}
	for _, sig := range signatures {
		if sig.match(sample) {
			return sig.note
		}
	}
	return ""
}

// pdfVersion reports the header line of a PDF file ("%PDF-1.7" and whatever
// follows in the first 20 bytes), with non-ASCII bytes dropped. Returns ""
// when the magic is absent.
func pdfVersion(raw []byte) string {
	if !bytes.HasPrefix(raw, []byte("%PDF")) {
		return ""
	}
	header := raw
	if len(header) > 20 {
		header = header[:20]
	}
	out := make([]byte, 0, len(header))
	for _, b := range header {
		if b < 0x80 {
			out = append(out, b)
		}
	}
	return string(out)
}
