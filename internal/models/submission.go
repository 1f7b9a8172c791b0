package models

import "time"

// Submission represents a student contribution from the remote submissions table
type Submission struct {
	ID         int64     `json:"id" db:"id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	Name       string    `json:"name" db:"name"`
	Title      string    `json:"title" db:"title"`
	Content    string    `json:"content" db:"content"`
	IsApproved bool      `json:"isApproved" db:"is_approved"`
}

// SubmissionRequest represents a request to submit a contribution
type SubmissionRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required,max=20000"`
}
