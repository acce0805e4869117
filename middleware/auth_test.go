package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ErthaLabs/ErthaExchange/config"
	"github.com/ErthaLabs/ErthaExchange/models"
	"github.com/ErthaLabs/ErthaExchange/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func optionalAuthContext(t *testing.T, authHeader string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/services", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}
	return c
}

func TestOptionalAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("NoHeaderContinuesAnonymously", func(t *testing.T) {
		c := optionalAuthContext(t, "")
		OptionalAuthMiddleware()(c)

		_, found := CurrentUser(c)
		assert.False(t, found)
		assert.False(t, c.IsAborted())
	})

	t.Run("GarbageTokenContinuesAnonymously", func(t *testing.T) {
		c := optionalAuthContext(t, "Bearer not.a.token")
		OptionalAuthMiddleware()(c)

		_, found := CurrentUser(c)
		assert.False(t, found)
		assert.False(t, c.IsAborted())
	})

	t.Run("ValidTokenLoadsUser", func(t *testing.T) {
		sqlDB, mock, err := sqlmock.New()
		assert.NoError(t, err)
		t.Cleanup(func() { sqlDB.Close() })

		db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
			SkipDefaultTransaction: true,
			Logger:                 logger.Default.LogMode(logger.Silent),
		})
		assert.NoError(t, err)
		config.DB = db

		org := models.User{Model: gorm.Model{ID: 2}, Email: "org@example.com", Role: models.RoleOrg, IsActive: true}
		token, err := utils.GenerateToken(&org)
		assert.NoError(t, err)

		mock.ExpectQuery(`SELECT \* FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role", "is_active"}).
				AddRow(2, "org@example.com", models.RoleOrg, true))

		c := optionalAuthContext(t, "Bearer "+token)
		OptionalAuthMiddleware()(c)

		user, found := CurrentUser(c)
		assert.True(t, found)
		assert.Equal(t, uint(2), user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
