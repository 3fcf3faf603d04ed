package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/misfinanzas/backend/internal/httputil"
	"github.com/misfinanzas/backend/internal/identity"
	"github.com/misfinanzas/backend/internal/models"
	"gorm.io/gorm"
)

// RegisterAuthRoutes registers the routes for authentication with
// the RouterGroup that is passed.
func RegisterAuthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/register", httputil.OptionsPost)
	r.POST("/register", Register)

	r.OPTIONS("/login", httputil.OptionsPost)
	r.POST("/login", Login)

	r.OPTIONS("/logout", httputil.OptionsPost)
	r.POST("/logout", Logout)

	me := r.Group("", Authenticate())
	me.OPTIONS("/me", httputil.OptionsGet)
	me.GET("/me", Me)
}

type CredentialsEditable struct {
	Email    string `json:"email" example:"jane@example.com"`
	Password string `json:"password" example:"correct horse battery staple"`
}

type UserResponse struct {
	Data  User          `json:"data"`
	Roles []models.Role `json:"roles"`
}

// User is the API representation of an account.
type User struct {
	ID        string      `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	Email     string      `json:"email" example:"jane@example.com"`
	Role      models.Role `json:"role" example:"FREE"`
	Active    bool        `json:"isActive" example:"true"`
	DeletedAt *time.Time  `json:"deletedAt"`
}

func newUser(user models.User) User {
	return User{
		ID:        user.ID.String(),
		Email:     user.Email,
		Role:      user.Role,
		Active:    user.Active,
		DeletedAt: user.DeletedAt,
	}
}

func setSessionCookie(c *gin.Context, user models.User) error {
	token, err := identity.NewSessionToken(user.ID)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(identity.SessionLifetime.Seconds()), "/", "", c.Request.TLS != nil, true)
	return nil
}

// Register creates an account and logs it in.
func Register(c *gin.Context) {
	var credentials CredentialsEditable

	err := httputil.BindData(c, &credentials)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var user models.User
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		user, err = models.NewUser(tx, credentials.Email, credentials.Password)
		return err
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = setSessionCookie(c, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{Error: models.ErrGeneral.Error()})
		return
	}

	c.JSON(http.StatusCreated, UserResponse{Data: newUser(user), Roles: models.Roles})
}

// Login verifies credentials and issues a session cookie.
func Login(c *gin.Context) {
	var credentials CredentialsEditable

	err := httputil.BindData(c, &credentials)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	user, err := models.Authenticate(models.DB, credentials.Email, credentials.Password)
	if err != nil {
		// An unknown email reads exactly like a wrong password.
		c.JSON(http.StatusForbidden, httpError{Error: models.ErrNotAuthorized.Error()})
		return
	}

	err = setSessionCookie(c, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{Error: models.ErrGeneral.Error()})
		return
	}

	models.RecordAudit(models.DB, user.ID, nil, "auth.login", "", requestMeta(c))

	c.JSON(http.StatusOK, UserResponse{Data: newUser(user), Roles: models.Roles})
}

// Logout clears the session cookie.
func Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", c.Request.TLS != nil, true)
	c.Status(http.StatusNoContent)
}

// Me returns the authenticated account.
func Me(c *gin.Context) {
	c.JSON(http.StatusOK, UserResponse{Data: newUser(currentUser(c)), Roles: models.Roles})
}
