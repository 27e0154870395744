package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"carrental-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupRoleGatedRouter(role string, allowed ...models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	if role != "" {
		router.Use(func(c *gin.Context) {
			c.Set("role", role)
			c.Next()
		})
	}
	router.GET("/protected", RequireRoles(allowed...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router
}

func doProtected(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestRequireRoles(t *testing.T) {
	t.Run("AllowsListedRole", func(t *testing.T) {
		router := setupRoleGatedRouter("MANAGER", models.RoleManager, models.RoleAdmin)
		assert.Equal(t, http.StatusOK, doProtected(router).Code)
	})

	t.Run("RejectsUnlistedRole", func(t *testing.T) {
		router := setupRoleGatedRouter("CLIENT", models.RoleManager, models.RoleAdmin)
		assert.Equal(t, http.StatusForbidden, doProtected(router).Code)
	})

	t.Run("RejectsUnknownRole", func(t *testing.T) {
		router := setupRoleGatedRouter("SUPERUSER", models.RoleManager, models.RoleAdmin)
		assert.Equal(t, http.StatusForbidden, doProtected(router).Code)
	})

	t.Run("RejectsMissingRole", func(t *testing.T) {
		router := setupRoleGatedRouter("", models.RoleManager, models.RoleAdmin)
		assert.Equal(t, http.StatusUnauthorized, doProtected(router).Code)
	})
}
