package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paginationContext(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/v1/transactions"+query, nil)
	return c
}

func TestNewPagination(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		p := NewPagination(paginationContext(t, ""))
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, DefaultPaginationLimit, p.Limit)
		assert.Equal(t, 0, p.Offset)
	})

	t.Run("ExplicitValues", func(t *testing.T) {
		p := NewPagination(paginationContext(t, "?page=3&limit=25"))
		assert.Equal(t, 3, p.Page)
		assert.Equal(t, 25, p.Limit)
		assert.Equal(t, 50, p.Offset)
	})

	t.Run("LimitClampedToMax", func(t *testing.T) {
		p := NewPagination(paginationContext(t, "?limit=5000"))
		assert.Equal(t, MaxPaginationLimit, p.Limit)
	})

	t.Run("InvalidValuesFallBack", func(t *testing.T) {
		p := NewPagination(paginationContext(t, "?page=-1&limit=abc"))
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, DefaultPaginationLimit, p.Limit)
	})
}

func TestPaginationSetTotal(t *testing.T) {
	p := &Pagination{Page: 1, Limit: 10}
	p.SetTotal(101)
	assert.Equal(t, int64(101), p.Total)
	assert.Equal(t, 11, p.LastPage)

	p.SetTotal(0)
	assert.Equal(t, 0, p.LastPage)
}
