package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "catatuang/internal/errors"
	"catatuang/internal/services"
	"catatuang/internal/uuid"
)

// userIDHeader carries the caller's user ID on internal API requests.
// The HTTP surface sits behind the bot process and trusted tooling, so
// identity is a header, not a credential.
const userIDHeader = "X-User-ID"

// Identity returns a Gin middleware that resolves the X-User-ID header
// to an existing user and stores the ID on the context.
func Identity(users services.UserServicer) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(userIDHeader)
		if !uuid.IsValid(id) {
			c.AbortWithStatusJSON(apperrors.ErrUnauthorized.StatusCode, gin.H{
				"error": gin.H{
					"code":    apperrors.ErrUnauthorized.Code,
					"message": apperrors.ErrUnauthorized.Message,
				},
			})
			return
		}

		user, err := users.GetByID(id)
		if err != nil {
			c.AbortWithStatusJSON(apperrors.ErrUnauthorized.StatusCode, gin.H{
				"error": gin.H{
					"code":    apperrors.ErrUnauthorized.Code,
					"message": apperrors.ErrUnauthorized.Message,
				},
			})
			return
		}

		c.Set("userID", user.ID)
		c.Next()
	}
}
