package classifier

import "fmt"

// FormatFileSize renders a byte count with binary units and one decimal
// place, e.g. FormatFileSize(1536) == "1.5 KB".
func FormatFileSize(n int64) string {
	size := float64(n)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1f TB", size)
}
