package services

import "errors"

var (
	// ErrNoteNotFound is returned when a note id does not exist
	ErrNoteNotFound = errors.New("note not found")
	// ErrInvalidSettings is returned when settings hold an unsupported value
	ErrInvalidSettings = errors.New("invalid settings")
	// ErrInvalidSubmission is returned when a contribution misses a required field
	ErrInvalidSubmission = errors.New("invalid submission")
	// ErrInvalidQuizAnswers is returned when the answers do not match the quiz
	ErrInvalidQuizAnswers = errors.New("invalid quiz answers")
	// ErrUnknownSection is returned when a visited path maps to no section
	ErrUnknownSection = errors.New("unknown section")
)
