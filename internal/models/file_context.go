package models

import "time"

// FileContext is one uploaded file retained in memory for prompt
// augmentation. Summary is produced once at upload time and never changes;
// RawContent holds the full decoded text for text-like files and a short
// descriptor for everything else.
type FileContext struct {
	FileName   string    `json:"file_name"`
	FileType   string    `json:"file_type"`
	Summary    string    `json:"summary"`
	RawContent string    `json:"raw_content"`
	UploadedAt time.Time `json:"uploaded_at"`
}
