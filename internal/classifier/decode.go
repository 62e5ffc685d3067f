package classifier

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeText converts raw bytes to a string using a best-effort chain of
// decode attempts: UTF-8, UTF-8 with byte-order mark, Windows-1252, and
// finally lossy UTF-8 with invalid sequences dropped. The last step always
// succeeds, so DecodeText never fails.
func DecodeText(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	if rest, ok := bytes.CutPrefix(raw, utf8BOM); ok && utf8.Valid(rest) {
		return string(rest)
	}
	if decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw); err == nil {
		return string(decoded)
	}
	return string(bytes.ToValidUTF8(raw, nil))
}
