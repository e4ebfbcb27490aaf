package utils

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestNewPaginationParams(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		want     PaginationParams
	}{
		{"defaults", 0, 0, PaginationParams{Page: 1, PageSize: DefaultPageSize, Offset: 0}},
		{"negative page", -3, 10, PaginationParams{Page: 1, PageSize: 10, Offset: 0}},
		{"oversized page size", 2, MaxPageSize + 1, PaginationParams{Page: 2, PageSize: DefaultPageSize, Offset: DefaultPageSize}},
		{"third page", 3, 10, PaginationParams{Page: 3, PageSize: 10, Offset: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPaginationParams(tt.page, tt.pageSize))
		})
	}
}

func TestNewPaginationParamsHugePageDoesNotOverflow(t *testing.T) {
	for _, page := range []int{500000000000000000, math.MaxInt} {
		p := NewPaginationParams(page, 20)
		assert.GreaterOrEqual(t, p.Offset, 0, "page %d", page)
		assert.LessOrEqual(t, p.Page, math.MaxInt/20)
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, total := Paginate(items, NewPaginationParams(1, 2))
	assert.Equal(t, []int{1, 2}, page)
	assert.Equal(t, int64(5), total)

	page, _ = Paginate(items, NewPaginationParams(3, 2))
	assert.Equal(t, []int{5}, page, "last page holds the remainder")

	page, total = Paginate(items, NewPaginationParams(4, 2))
	assert.Empty(t, page)
	assert.Equal(t, int64(5), total)

	page, _ = Paginate(items, NewPaginationParams(math.MaxInt, 20))
	assert.Empty(t, page)

	page, _ = Paginate(items, PaginationParams{Page: 1, PageSize: 2, Offset: -10})
	assert.Empty(t, page)

	page, _ = Paginate(items, PaginationParams{Page: 1, PageSize: math.MaxInt, Offset: 1})
	assert.Equal(t, []int{2, 3, 4, 5}, page)
}

func TestGetPaginationParams(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?page=2&limit=5", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	assert.Equal(t, PaginationParams{Page: 2, PageSize: 5, Offset: 5}, GetPaginationParams(c))

	req = httptest.NewRequest(http.MethodGet, "/?page=500000000000000000&limit=abc", nil)
	c = e.NewContext(req, httptest.NewRecorder())
	p := GetPaginationParams(c)
	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.GreaterOrEqual(t, p.Offset, 0)
}
