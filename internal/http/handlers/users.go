package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mdrobiulislam1479/ticket-point-server/internal/domain"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/http/middleware"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/repositories"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/utils"
)

type upsertUserRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
}

// UpsertUser records a login from the identity provider. First login creates
// the account with the default role; later logins only bump last_logged_in.
func UpsertUser(c *gin.Context) {
	var req upsertUserRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	users := repositories.UserRepository{}
	if err := users.Upsert(req.Email, req.Name, time.Now().UTC()); err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "users", "upsert", req.Email)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetUserRole reports the role of the requester's own account. An account
// that has not been stored yet reads as a null role rather than an error,
// so the client can treat "unknown" and "plain user" the same way.
func GetUserRole(c *gin.Context) {
	email := middleware.TokenEmail(c)

	users := repositories.UserRepository{}
	user, err := users.GetByEmail(email)
	if err != nil {
		if domain.IsNotFound(err) {
			c.JSON(http.StatusOK, gin.H{"role": nil})
			return
		}
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"role": user.Role})
}

// GetUserByEmail returns one stored account.
func GetUserByEmail(c *gin.Context) {
	users := repositories.UserRepository{}
	user, err := users.GetByEmail(c.Param("email"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
