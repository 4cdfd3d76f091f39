package middleware

import (
	"net/http"

	"apply/models"

	"github.com/gin-gonic/gin"
)

// RequireRole пропускает запрос только если роль из JWT не ниже required
func RequireRole(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Роль пользователя не определена"})
			c.Abort()
			return
		}
		roleStr, ok := role.(string)
		if !ok || !models.RoleAtLeast(roleStr, required) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Недостаточно прав для выполнения операции"})
			c.Abort()
			return
		}
		c.Next()
	}
}
