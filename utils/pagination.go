// utils/pagination.go
package utils

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// StringSet is an immutable allow-list injected at construction: sortable
// columns, permitted currencies. Sorting is restricted to listed columns so
// query params can never inject arbitrary SQL identifiers.
type StringSet map[string]struct{}

func NewStringSet(fields ...string) StringSet {
	s := make(StringSet, len(fields))
	for _, f := range fields {
		s[f] = struct{}{}
	}
	return s
}

func (s StringSet) Contains(field string) bool {
	_, ok := s[field]
	return ok
}

// Pagination holds normalized page/limit/sort query parameters.
type Pagination struct {
	Page      int
	Limit     int
	SortBy    string
	Ascending bool
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// OrderClause renders the validated sort as a gorm Order expression.
func (p Pagination) OrderClause() string {
	dir := "desc"
	if p.Ascending {
		dir = "asc"
	}
	return p.SortBy + " " + dir
}

// ParsePagination reads page/limit/sortBy/sortOrder from the query string.
// Page is at least 1, limit is clamped to 1..100, sortBy falls back to
// defaultSort unless allow-listed.
func ParsePagination(c *gin.Context, allowed StringSet, defaultSort string, defaultAsc bool) Pagination {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	sortBy := c.DefaultQuery("sortBy", defaultSort)
	if !allowed.Contains(sortBy) {
		sortBy = defaultSort
	}

	ascending := defaultAsc
	switch strings.ToLower(c.Query("sortOrder")) {
	case "asc":
		ascending = true
	case "desc":
		ascending = false
	}

	return Pagination{Page: page, Limit: limit, SortBy: sortBy, Ascending: ascending}
}
