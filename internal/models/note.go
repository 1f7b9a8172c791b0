package models

import "time"

// Note represents a free-text study note attached to a section
type Note struct {
	ID        string    `json:"id"`
	Section   string    `json:"section"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteRequest represents a request to create or update a note
type NoteRequest struct {
	Section string `json:"section" validate:"required,max=64"`
	Content string `json:"content" validate:"required"`
}
