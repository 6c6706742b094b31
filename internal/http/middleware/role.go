package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdrobiulislam1479/ticket-point-server/internal/domain"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/domain/models"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/repositories"
)

const currentUserKey = "current_user"

// RequireRole resolves the verified email to a stored account and rejects
// the request unless the account carries the required role. The resolved
// account is attached to the context so handlers can read the vendor
// identity and fraud flag without a second lookup.
//
// Account state is read from the store on every request on purpose: role and
// fraud changes take effect immediately, with no cache to invalidate.
func RequireRole(users repositories.UserRepository, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := TokenEmail(c)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Access!"})
			return
		}

		user, err := users.GetByEmail(email)
		if err != nil {
			if domain.IsNotFound(err) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden: user not found"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		if user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden: " + role + " only"})
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the account attached by RequireRole.
func CurrentUser(c *gin.Context) (models.User, bool) {
	if c == nil {
		return models.User{}, false
	}
	if v, ok := c.Get(currentUserKey); ok {
		if u, ok := v.(models.User); ok {
			return u, true
		}
	}
	return models.User{}, false
}
