package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReportWindow(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

	t.Run("Day", func(t *testing.T) {
		start, end, ok := reportWindow("day", now)
		assert.True(t, ok)
		assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, 15, end.Day())
	})

	t.Run("Week", func(t *testing.T) {
		start, end, ok := reportWindow("week", now)
		assert.True(t, ok)
		assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, 15, end.Day())
	})

	t.Run("Month", func(t *testing.T) {
		start, _, ok := reportWindow("month", now)
		assert.True(t, ok)
		assert.True(t, start.Before(now.AddDate(0, 0, -29)))
	})

	t.Run("InvalidPeriod", func(t *testing.T) {
		_, _, ok := reportWindow("year", now)
		assert.False(t, ok)
	})
}
