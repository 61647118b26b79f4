package api

import "time"

// Request DTOs

type CreateChangelogEntryRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content,omitempty"`
}

type UpdateChangelogEntryRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content,omitempty"`
}

// Response DTOs

type ChangelogEntryResponse struct {
	Id          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"` // sanitized HTML
	PublishedAt time.Time `json:"published_at"`
}

type ChangelogResponse struct {
	Entries []ChangelogEntryResponse `json:"entries"`
}
