package helpers

import (
	"net/http"
	"strconv"

	"eventura/internal/domain"
)

// Pagination query parameter defaults and limits.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParsePagination reads page and page_size from the query string. Invalid or
// missing values fall back to defaults; page_size is capped at MaxPageSize.
func ParsePagination(r *http.Request) domain.PaginationParams {
	q := r.URL.Query()
	return domain.PaginationParams{
		Page:     min(positiveInt(q.Get("page"), DefaultPage), maxPage),
		PageSize: min(positiveInt(q.Get("page_size"), DefaultPageSize), MaxPageSize),
	}
}

// maxPage keeps the computed offset well inside int range.
const maxPage = 1 << 20

func positiveInt(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil && v >= 1 {
		return v
	}
	return def
}

// PaginationMeta is the pagination metadata included in paginated list responses.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPaginationMeta builds PaginationMeta; TotalPages is 0 when pageSize is 0.
func NewPaginationMeta(page, pageSize, total int) PaginationMeta {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return PaginationMeta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Page is one page of a list together with its pagination metadata.
type Page[T any] struct {
	Items      []T            `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
}

// NewPage wraps items; a nil slice is encoded as an empty array.
func NewPage[T any](items []T, params domain.PaginationParams, total int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Pagination: NewPaginationMeta(params.Page, params.PageSize, total)}
}
