// Package content loads the locale-specific study content served to clients.
//
// Content files are decoded into typed structures and validated once, at load time,
// so a malformed file stops the server at startup instead of failing in front of a student.
package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"sort"
	"strings"
)

var (
	// ErrUnknownLocale is returned when no content exists for the requested locale
	ErrUnknownLocale = errors.New("unknown locale")
	// ErrInvalidContent is returned when a content file fails validation
	ErrInvalidContent = errors.New("invalid content")
)

// Supported locales
var Locales = []string{"ar", "fr"}

// Question is a multiple choice quiz question
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// Catalog holds the validated content of every locale
type Catalog struct {
	quizzes map[string][]Question
}

// NewCatalog validates quizzes and builds a catalog from them
func NewCatalog(quizzes map[string][]Question) (*Catalog, error) {
	for locale, questions := range quizzes {
		if err := ValidateQuestions(questions); err != nil {
			return nil, fmt.Errorf("quiz %s: %w", locale, err)
		}
	}
	return &Catalog{quizzes: quizzes}, nil
}

// Load reads quiz.<locale>.json for each locale from "fsys"
func Load(fsys fs.FS, locales ...string) (*Catalog, error) {
	quizzes := make(map[string][]Question, len(locales))
	for _, locale := range locales {
		name := fmt.Sprintf("quiz.%s.json", locale)
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		var questions []Question
		if err := json.Unmarshal(data, &questions); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %v", ErrInvalidContent, name, err)
		}
		quizzes[locale] = questions
	}
	return NewCatalog(quizzes)
}

// ValidateQuestions checks that a quiz is usable: it has questions, every question has text,
// at least two distinct options and a correct answer among them.
func ValidateQuestions(questions []Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrInvalidContent)
	}
	for i, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			return fmt.Errorf("%w: question %d has no text", ErrInvalidContent, i+1)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("%w: question %d needs at least two options", ErrInvalidContent, i+1)
		}
		seen := make(map[string]struct{}, len(q.Options))
		for _, option := range q.Options {
			if _, dup := seen[option]; dup {
				return fmt.Errorf("%w: question %d repeats option %q", ErrInvalidContent, i+1, option)
			}
			seen[option] = struct{}{}
		}
		if !slices.Contains(q.Options, q.CorrectAnswer) {
			return fmt.Errorf("%w: question %d answer %q is not an option", ErrInvalidContent, i+1, q.CorrectAnswer)
		}
	}
	return nil
}

// Quiz returns the questions of a locale
func (c *Catalog) Quiz(locale string) ([]Question, error) {
	questions, ok := c.quizzes[locale]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
	}
	return questions, nil
}

// Locales returns the loaded locales in alphabetical order
func (c *Catalog) Locales() []string {
	locales := make([]string, 0, len(c.quizzes))
	for locale := range c.quizzes {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}
