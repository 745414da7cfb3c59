// Package drafts keeps unfinished entries on disk between sessions.
package drafts

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"
)

// NewEntryKey is the draft slot used by the new-entry form.
const NewEntryKey = "new-entry"

type Draft struct {
	Title   string    `json:"title"`
	Content string    `json:"content"`
	SavedAt time.Time `json:"saved_at"`
}

// Empty reports whether the draft has nothing worth keeping.
func (d Draft) Empty() bool {
	return strings.TrimSpace(d.Title) == "" && strings.TrimSpace(d.Content) == ""
}

type Store struct {
	d *diskv.Diskv
}

// Open returns a Store rooted at dir.
func Open(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("drafts dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create drafts dir: %w", err)
	}
	return &Store{d: diskv.New(diskv.Options{
		BasePath:     dir,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 256 * 1024,
	})}, nil
}

func (s *Store) Save(key string, d Draft) error {
	if d.SavedAt.IsZero() {
		d.SavedAt = time.Now().UTC()
	}
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	if err := s.d.Write(key, data); err != nil {
		return fmt.Errorf("write draft %s: %w", key, err)
	}
	return nil
}

// Load returns the draft under key. The bool is false when none is kept.
func (s *Store) Load(key string) (Draft, bool, error) {
	if !s.d.Has(key) {
		return Draft{}, false, nil
	}
	data, err := s.d.Read(key)
	if err != nil {
		return Draft{}, false, fmt.Errorf("read draft %s: %w", key, err)
	}
	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return Draft{}, false, fmt.Errorf("decode draft %s: %w", key, err)
	}
	return d, true, nil
}

// Clear removes the draft under key. Clearing a missing draft is not an error.
func (s *Store) Clear(key string) error {
	if !s.d.Has(key) {
		return nil
	}
	if err := s.d.Erase(key); err != nil {
		return fmt.Errorf("erase draft %s: %w", key, err)
	}
	return nil
}
