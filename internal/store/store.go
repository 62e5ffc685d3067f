// Package store persists named conversation transcripts as one JSON file
// per conversation. There is no locking across processes: concurrent writes
// to the same name are last-writer-wins, which is acceptable for a
// single-user local tool.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"localchat/internal/models"
)

var (
	// ErrNotFound means no conversation is stored under the given name.
	ErrNotFound = errors.New("conversation not found")
	// ErrCorrupt means the stored file exists but does not parse as a
	// conversation record.
	ErrCorrupt = errors.New("conversation file corrupt")
)

// Store is a flat-file conversation store rooted at one directory.
type Store struct {
	dir string
	log *zap.SugaredLogger
}

// New ensures the storage directory exists and returns a Store over it.
func New(dir string, log *zap.SugaredLogger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create conversations dir: %w", err)
	}
	return &Store{dir: dir, log: log}, nil
}

// SanitizeName reduces a client-supplied conversation name to a filename
// that cannot escape the storage directory: path separators and other
// special characters are dropped, leading dots stripped. Returns "" when
// nothing safe remains.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '-' || r == '_' || r == ' ' || r == '.':
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), " .")
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Save writes the conversation under the given name, deriving a timestamped
// name when none is supplied, and returns the resolved name. The write is
// atomic: a re-save of the same name fully replaces the previous record or
// leaves it untouched.
func (s *Store) Save(name string, messages []json.RawMessage) (string, error) {
	if name == "" {
		name = "Conversation_" + time.Now().Format("20060102_150405")
	}
	name = SanitizeName(name)
	if name == "" {
		return "", errors.New("invalid conversation name")
	}
	if messages == nil {
		messages = []json.RawMessage{}
	}

	conv := models.Conversation{
		Name:     name,
		Created:  time.Now().UTC(),
		Messages: messages,
	}
	data, err := json.MarshalIndent(conv, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode conversation: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".conv-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write conversation: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("store conversation: %w", err)
	}
	return name, nil
}

// Load reads one conversation by name.
func (s *Store) Load(name string) (*models.Conversation, error) {
	name = SanitizeName(name)
	if name == "" {
		return nil, ErrNotFound
	}
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read conversation %s: %w", name, err)
	}
	var conv models.Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, name, err)
	}
	return &conv, nil
}

// List enumerates stored conversations, newest first. Unreadable or corrupt
// files are skipped, not fatal.
func (s *Store) List() ([]models.ConversationSummary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read conversations dir: %w", err)
	}

	summaries := make([]models.ConversationSummary, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			s.log.Warnw("skipping unreadable conversation", "file", entry.Name(), "error", err)
			continue
		}
		var conv models.Conversation
		if err := json.Unmarshal(data, &conv); err != nil {
			s.log.Warnw("skipping corrupt conversation", "file", entry.Name(), "error", err)
			continue
		}
		filename := strings.TrimSuffix(entry.Name(), ".json")
		name := conv.Name
		if name == "" {
			name = filename
		}
		summaries = append(summaries, models.ConversationSummary{
			Filename:     filename,
			Name:         name,
			Created:      conv.Created,
			MessageCount: len(conv.Messages),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Created.After(summaries[j].Created)
	})
	return summaries, nil
}

// Delete removes one conversation by name.
func (s *Store) Delete(name string) error {
	name = SanitizeName(name)
	if name == "" {
		return ErrNotFound
	}
	if err := os.Remove(s.path(name)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete conversation %s: %w", name, err)
	}
	return nil
}
