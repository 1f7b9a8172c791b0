package models

import "time"

// Bookmark represents a saved link to a page of the study guide.
// URL is unique among the bookmarks of one device.
type Bookmark struct {
	ID        string    `json:"id"`
	Section   string    `json:"section"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// BookmarkRequest represents a request to add or toggle a bookmark
type BookmarkRequest struct {
	Section string `json:"section" validate:"required,max=64"`
	Title   string `json:"title" validate:"required,max=255"`
	URL     string `json:"url" validate:"required,max=2048"`
}

// BookmarkToggleResponse represents the bookmark state after a toggle
type BookmarkToggleResponse struct {
	Bookmarked bool      `json:"bookmarked"`
	Bookmark   *Bookmark `json:"bookmark,omitempty"`
}
