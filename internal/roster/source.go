// Package roster loads the class roster from the bundled file and imports it from spreadsheets
package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/antigone-study/backend/internal/models"
)

// ErrInvalidRoster is returned when roster data fails validation
var ErrInvalidRoster = errors.New("invalid roster")

// FileSource reads the roster from a JSON file
type FileSource struct {
	path string
}

// NewFileSource creates a roster source reading "path"
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load reads and validates the roster file
func (s *FileSource) Load(ctx context.Context) ([]models.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read roster file %q: %w", s.path, err)
	}

	return Decode(data)
}

// Decode parses and validates a JSON roster
func Decode(data []byte) ([]models.Student, error) {
	var students []models.Student
	if err := json.Unmarshal(data, &students); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	if err := Validate(students); err != nil {
		return nil, err
	}
	return students, nil
}

// Validate checks that every student has a positive id, a username and a password,
// and that ids and usernames (case-insensitively) are unique.
func Validate(students []models.Student) error {
	ids := make(map[int]struct{}, len(students))
	usernames := make(map[string]struct{}, len(students))

	for i, s := range students {
		if s.ID <= 0 {
			return fmt.Errorf("%w: entry %d has no positive id", ErrInvalidRoster, i)
		}
		username := strings.ToLower(strings.TrimSpace(s.Username))
		if username == "" {
			return fmt.Errorf("%w: entry %d has no username", ErrInvalidRoster, i)
		}
		if s.Password == "" {
			return fmt.Errorf("%w: entry %d has no password", ErrInvalidRoster, i)
		}
		if _, dup := ids[s.ID]; dup {
			return fmt.Errorf("%w: duplicate id %d", ErrInvalidRoster, s.ID)
		}
		if _, dup := usernames[username]; dup {
			return fmt.Errorf("%w: duplicate username %q", ErrInvalidRoster, s.Username)
		}
		ids[s.ID] = struct{}{}
		usernames[username] = struct{}{}
	}

	return nil
}

// WriteFile writes the roster as indented JSON
func WriteFile(path string, students []models.Student) error {
	data, err := json.MarshalIndent(students, "", "  ")
	if err != nil {
		return fmt.Errorf("encode roster: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write roster file %q: %w", path, err)
	}
	return nil
}
