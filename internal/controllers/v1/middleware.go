package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/misfinanzas/backend/internal/identity"
	"github.com/misfinanzas/backend/internal/models"
)

// SessionCookie is the name of the cookie holding the session token.
const SessionCookie = "mf_session"

const userContextKey = "finanzas:user"

// Authenticate resolves the session cookie to a user and aborts with 401
// when there is no usable session. Suspended and deleted accounts are
// rejected here, their sessions do not outlive the account state.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: identity.ErrInvalidSession.Error()})
			return
		}

		userID, err := identity.ParseSessionToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: identity.ErrInvalidSession.Error()})
			return
		}

		user, err := models.UserByID(models.DB, userID)
		if err != nil || !user.Usable() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: identity.ErrInvalidSession.Error()})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireRole aborts with 403 when the authenticated user's tier is
// below the given role. It must run after Authenticate.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user.Role.Level() < role.Level() {
			c.AbortWithStatusJSON(http.StatusForbidden, httpError{Error: models.ErrNotAuthorized.Error()})
			return
		}

		c.Next()
	}
}

func currentUser(c *gin.Context) models.User {
	return c.MustGet(userContextKey).(models.User)
}

func requestMeta(c *gin.Context) models.RequestMeta {
	return models.RequestMeta{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}
