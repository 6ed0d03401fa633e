package dto

import "math"

// PageMeta captures pagination metadata for list responses.
type PageMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPageMeta derives pagination metadata from the request and row count.
func NewPageMeta(page, limit int, total int64) PageMeta {
	if page <= 0 {
		page = 1
	}

	meta := PageMeta{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		meta.TotalPages = int(math.Ceil(float64(total) / float64(limit)))
	} else {
		meta.TotalPages = 1
	}
	return meta
}
