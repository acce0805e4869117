package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ErthaLabs/ErthaExchange/config"
	"github.com/ErthaLabs/ErthaExchange/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func adminContext(t *testing.T, method, path, body string, id string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: id}}
	c.Set("user", models.User{Model: gorm.Model{ID: 1}, Role: models.RoleAdmin, IsActive: true})
	return c, w
}

func conversionRows(status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "organization_id", "amount", "status", "created_at"}).
		AddRow(5, 2, 500.0, status, time.Now())
}

func TestRejectConversionRequestStateGuard(t *testing.T) {
	db, mock := setupMockDB(t)
	config.DB = db

	t.Run("AlreadyProcessed", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "conversion_requests"`).
			WillReturnRows(conversionRows(models.ConversionStatusApproved))
		// Guarded update matches nothing for a non-pending request
		mock.ExpectExec(`UPDATE "conversion_requests" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		c, w := adminContext(t, http.MethodPut, "/v1/admin/conversions/5/reject", `{"reason":"duplicate request"}`, "5")
		RejectConversionRequest(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ReasonRequired", func(t *testing.T) {
		c, w := adminContext(t, http.MethodPut, "/v1/admin/conversions/5/reject", `{}`, "5")
		RejectConversionRequest(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "conversion_requests"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		c, w := adminContext(t, http.MethodPut, "/v1/admin/conversions/99/reject", `{"reason":"x"}`, "99")
		RejectConversionRequest(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestApproveConversionRequestStateGuard(t *testing.T) {
	db, mock := setupMockDB(t)
	config.DB = db

	mock.ExpectQuery(`SELECT \* FROM "conversion_requests"`).
		WillReturnRows(conversionRows(models.ConversionStatusRejected))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "conversion_requests" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	c, w := adminContext(t, http.MethodPut, "/v1/admin/conversions/5/approve", `{}`, "5")
	ApproveConversionRequest(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
