package dto

import "time"

// Layouts accepted for date fields in request payloads.
const (
	ISOLayout  = time.RFC3339
	DateLayout = "2006-01-02"
)

// ListQuery carries the pagination options shared by every list endpoint.
type ListQuery struct {
	Page  int `query:"page" validate:"omitempty,min=1"`
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// Page wraps a list payload together with its pagination metadata.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// NewPage assembles a paginated payload.
func NewPage[T any](items []T, total int64, page, limit int) Page[T] {
	if page < 1 {
		page = 1
	}
	return Page[T]{Items: items, Total: total, Page: page, Limit: limit}
}

// FileResponse is the client-facing view of an uploaded file.
type FileResponse struct {
	URL string `json:"url"`
}
