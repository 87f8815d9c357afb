package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const UserIDKey = "userID"

// IdentityMiddleware достаёт клиентский идентификатор из заголовка.
// Аутентификации нет: личность генерируется на клиенте, сервер
// только требует валидный UUID.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-ID")
		if raw == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing X-User-ID header"})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// WSIdentityMiddleware — вариант для WebSocket: браузерный клиент
// не может выставить заголовок при апгрейде, id идёт в query.
func WSIdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Query("user_id")
		if raw == "" {
			raw = c.GetHeader("X-User-ID")
		}

		if raw == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing user id"})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}
