package utils

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginationParams represents pagination parameters
type PaginationParams struct {
	Page     int
	PageSize int
	Offset   int
}

// NewPaginationParams clamps page and page size to sane values.
func NewPaginationParams(page, pageSize int) PaginationParams {
	if page <= 0 {
		page = 1
	}

	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}

	// keep (page-1)*pageSize from overflowing
	if page > math.MaxInt/pageSize {
		page = math.MaxInt / pageSize
	}

	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Offset:   (page - 1) * pageSize,
	}
}

// GetPaginationParams extracts pagination parameters from request
func GetPaginationParams(c echo.Context) PaginationParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("limit"))

	return NewPaginationParams(page, pageSize)
}

// Paginate returns the window of items selected by p and the total count.
func Paginate[T any](items []T, p PaginationParams) ([]T, int64) {
	total := int64(len(items))
	if p.Offset < 0 || p.Offset >= len(items) {
		return []T{}, total
	}
	end := len(items)
	if p.PageSize >= 0 && p.PageSize < end-p.Offset {
		end = p.Offset + p.PageSize
	}
	return items[p.Offset:end], total
}
