package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paginationContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestParsePaginationDefaults(t *testing.T) {
	allowed := NewStringSet("created_at", "name")

	p := ParsePagination(paginationContext(""), allowed, "created_at", false)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, "created_at", p.SortBy)
	assert.False(t, p.Ascending)
	assert.Equal(t, 0, p.Offset())
	assert.Equal(t, "created_at desc", p.OrderClause())
}

func TestParsePaginationClampsAndValidates(t *testing.T) {
	allowed := NewStringSet("created_at", "name")

	p := ParsePagination(paginationContext("page=0&limit=500"), allowed, "created_at", false)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.Limit)

	p = ParsePagination(paginationContext("page=-3&limit=abc"), allowed, "created_at", false)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)

	p = ParsePagination(paginationContext("page=3&limit=20"), allowed, "created_at", false)
	assert.Equal(t, 40, p.Offset())
}

func TestParsePaginationSortAllowList(t *testing.T) {
	allowed := NewStringSet("created_at", "name")

	// Unknown columns fall back to the default instead of hitting SQL.
	p := ParsePagination(paginationContext("sortBy=password;drop+table"), allowed, "created_at", false)
	assert.Equal(t, "created_at", p.SortBy)

	p = ParsePagination(paginationContext("sortBy=name&sortOrder=asc"), allowed, "created_at", false)
	assert.Equal(t, "name", p.SortBy)
	assert.True(t, p.Ascending)
	assert.Equal(t, "name asc", p.OrderClause())

	p = ParsePagination(paginationContext("sortOrder=DESC"), allowed, "created_at", true)
	assert.False(t, p.Ascending)

	p = ParsePagination(paginationContext("sortOrder=sideways"), allowed, "created_at", true)
	assert.True(t, p.Ascending)
}

func TestStringSetContains(t *testing.T) {
	s := NewStringSet("EGP", "USD")
	assert.True(t, s.Contains("EGP"))
	assert.False(t, s.Contains("egp"))
	assert.False(t, s.Contains("GBP"))
}
