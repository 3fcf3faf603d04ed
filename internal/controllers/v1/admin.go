package v1

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/misfinanzas/backend/internal/httputil"
	"github.com/misfinanzas/backend/internal/models"
	"github.com/ryanuber/go-glob"
	"gorm.io/gorm"
)

// ownerBootstrapToken is the shared secret for the one-time owner claim.
// An empty token disables the claim entirely.
var ownerBootstrapToken string

// SetOwnerBootstrapToken configures the token required to claim the
// owner role.
func SetOwnerBootstrapToken(token string) {
	ownerBootstrapToken = strings.TrimSpace(token)
}

// RegisterAdminRoutes registers the routes for user management with
// the RouterGroup that is passed. Route-level middleware enforces the
// minimum tier; per-target policy runs in the handlers.
func RegisterAdminRoutes(r *gin.RouterGroup) {
	admin := r.Group("", RequireRole(models.RoleAdmin))
	{
		admin.OPTIONS("/users", httputil.OptionsGet)
		admin.GET("/users", GetUsers)

		admin.OPTIONS("/users/:id/set-plan", httputil.OptionsPost)
		admin.POST("/users/:id/set-plan", SetPlan)

		admin.OPTIONS("/users/:id/suspend", httputil.OptionsPost)
		admin.POST("/users/:id/suspend", Suspend)
	}

	superAdmin := r.Group("", RequireRole(models.RoleSuperAdmin))
	{
		superAdmin.OPTIONS("/users/:id/soft-delete", httputil.OptionsPost)
		superAdmin.POST("/users/:id/soft-delete", SoftDelete)

		superAdmin.OPTIONS("/users/:id/recover", httputil.OptionsPost)
		superAdmin.POST("/users/:id/recover", Recover)

		superAdmin.OPTIONS("/users/:id/set-role", httputil.OptionsPost)
		superAdmin.POST("/users/:id/set-role", SetRole)

		superAdmin.OPTIONS("/audit", httputil.OptionsGet)
		superAdmin.GET("/audit", GetAuditLogs)
	}

	// Claiming the owner role only needs a session plus the token.
	r.OPTIONS("/bootstrap/claim-owner", httputil.OptionsPost)
	r.POST("/bootstrap/claim-owner", ClaimOwner)
}

type UserListResponse struct {
	Data []User `json:"data"`
}

// GetUsers lists accounts, newest first. Soft-deleted accounts stay
// visible so that they can be recovered.
func GetUsers(c *gin.Context) {
	var users []models.User
	err := models.DB.Order("created_at DESC").Limit(500).Find(&users).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	data := make([]User, 0, len(users))
	for _, user := range users {
		data = append(data, newUser(user))
	}

	c.JSON(http.StatusOK, UserListResponse{Data: data})
}

type RoleEditable struct {
	Role models.Role `json:"role" example:"PREMIUM"`
}

// targetUser resolves the :id path parameter and enforces the common
// per-target checks: acting on yourself through this API is forbidden,
// and the actor's tier must outrank the target's.
func targetUser(c *gin.Context, actor models.User) (models.User, error) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		return models.User{}, err
	}

	if id == actor.ID {
		return models.User{}, models.ErrNotAuthorized
	}

	target, err := models.UserByID(models.DB, id)
	if err != nil {
		return models.User{}, err
	}

	err = models.EnsureCanManage(actor.Role, target.Role)
	if err != nil {
		return models.User{}, err
	}

	return target, nil
}

// SetPlan switches a user between the FREE and PREMIUM plans.
func SetPlan(c *gin.Context) {
	var editable RoleEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if !editable.Role.IsPlan() {
		c.JSON(http.StatusBadRequest, httpError{Error: errNotAPlan.Error()})
		return
	}

	actor := currentUser(c)

	target, err := targetUser(c, actor)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if !target.Role.IsPlan() {
		c.JSON(http.StatusBadRequest, httpError{Error: errTargetNoPlan.Error()})
		return
	}

	previous := target.Role
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		target.Role = editable.Role
		return tx.Save(&target).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	models.RecordAudit(models.DB, actor.ID, &target.ID, "admin.setPlan", fmt.Sprintf("%s -> %s", previous, target.Role), requestMeta(c))

	c.JSON(http.StatusOK, UserResponse{Data: newUser(target), Roles: models.Roles})
}

type SuspendEditable struct {
	Active *bool `json:"isActive" binding:"required" example:"false"`
}

// Suspend toggles whether an account may log in.
func Suspend(c *gin.Context) {
	var editable SuspendEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	actor := currentUser(c)

	target, err := targetUser(c, actor)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	// Owners cannot be locked out through the management API.
	if target.Role == models.RoleOwner {
		c.JSON(http.StatusForbidden, httpError{Error: models.ErrNotAuthorized.Error()})
		return
	}

	previous := target.Active
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		target.Active = *editable.Active
		return tx.Save(&target).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	models.RecordAudit(models.DB, actor.ID, &target.ID, "admin.setActive", fmt.Sprintf("%t -> %t", previous, target.Active), requestMeta(c))

	c.JSON(http.StatusOK, UserResponse{Data: newUser(target), Roles: models.Roles})
}

// SoftDelete marks an account as deleted. The account and its data stay
// in the database and can be recovered.
func SoftDelete(c *gin.Context) {
	actor := currentUser(c)

	target, err := targetUser(c, actor)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if target.Role == models.RoleSuperAdmin || target.Role == models.RoleOwner {
		c.JSON(http.StatusForbidden, httpError{Error: models.ErrNotAuthorized.Error()})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		target.Active = false
		target.DeletedAt = &now
		return tx.Save(&target).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	models.RecordAudit(models.DB, actor.ID, &target.ID, "admin.softDelete", "", requestMeta(c))

	c.JSON(http.StatusOK, UserResponse{Data: newUser(target), Roles: models.Roles})
}

// Recover reverses a soft delete and reactivates the account.
func Recover(c *gin.Context) {
	actor := currentUser(c)

	target, err := targetUser(c, actor)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		target.Active = true
		target.DeletedAt = nil
		return tx.Save(&target).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	models.RecordAudit(models.DB, actor.ID, &target.ID, "admin.recover", "", requestMeta(c))

	c.JSON(http.StatusOK, UserResponse{Data: newUser(target), Roles: models.Roles})
}

// SetRole assigns a role below owner. Assigning SUPER_ADMIN and
// touching a SUPER_ADMIN both require the acting user to be an owner.
func SetRole(c *gin.Context) {
	var editable RoleEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if !editable.Role.Valid() {
		c.JSON(http.StatusBadRequest, httpError{Error: models.ErrRoleInvalid.Error()})
		return
	}

	actor := currentUser(c)

	if !editable.Role.AssignableViaAdmin() {
		c.JSON(http.StatusForbidden, httpError{Error: models.ErrNotAuthorized.Error()})
		return
	}

	if editable.Role.RequiresOwnerActor() && actor.Role != models.RoleOwner {
		c.JSON(http.StatusForbidden, httpError{Error: models.ErrNotAuthorized.Error()})
		return
	}

	target, err := targetUser(c, actor)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	// targetUser already rejects owners (nobody outranks them), and a
	// super admin target requires an owner actor by the same rule.

	previous := target.Role
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		target.Role = editable.Role
		return tx.Save(&target).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	models.RecordAudit(models.DB, actor.ID, &target.ID, "admin.setRole", fmt.Sprintf("%s -> %s", previous, target.Role), requestMeta(c))

	c.JSON(http.StatusOK, UserResponse{Data: newUser(target), Roles: models.Roles})
}

type ClaimOwnerEditable struct {
	Token string `json:"token"`
}

// ClaimOwner promotes the authenticated user to owner when the
// bootstrap token matches and the owner limit has not been reached.
// Claiming again as an owner is a no-op.
func ClaimOwner(c *gin.Context) {
	var editable ClaimOwnerEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if ownerBootstrapToken == "" || strings.TrimSpace(editable.Token) != ownerBootstrapToken {
		c.JSON(http.StatusForbidden, httpError{Error: models.ErrNotAuthorized.Error()})
		return
	}

	user := currentUser(c)

	if user.Role == models.RoleOwner {
		c.JSON(http.StatusOK, UserResponse{Data: newUser(user), Roles: models.Roles})
		return
	}

	previous := user.Role
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		owners, err := models.CountOwners(tx)
		if err != nil {
			return err
		}

		if owners >= models.MaxOwners {
			return models.ErrOwnerLimitReached
		}

		user.Role = models.RoleOwner
		return tx.Save(&user).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	models.RecordAudit(models.DB, user.ID, &user.ID, "bootstrap.claimOwner", fmt.Sprintf("%s -> %s", previous, user.Role), requestMeta(c))

	c.JSON(http.StatusOK, UserResponse{Data: newUser(user), Roles: models.Roles})
}

type AuditLogListResponse struct {
	Data []AuditLog `json:"data"`
}

// AuditLog is the API representation of an audit entry.
type AuditLog struct {
	ID          string `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	ActorID     string `json:"actorId" example:"44b09f33-2a67-4b23-9b64-0e93e544ef35"`
	ActorEmail  string `json:"actorEmail" example:"admin@example.com"`
	TargetID    string `json:"targetId,omitempty" example:"c7990eee-dd07-4c51-9a53-4d8b3ed46c5c"`
	TargetEmail string `json:"targetEmail,omitempty" example:"jane@example.com"`
	Action      string `json:"action" example:"admin.setRole"`
	Detail      string `json:"detail" example:"FREE -> ADMIN"`
	RequestIP   string `json:"requestIp" example:"203.0.113.7"`
	UserAgent   string `json:"requestUserAgent" example:"Mozilla/5.0"`
	CreatedAt   string `json:"createdAt" example:"2026-03-01T10:24:30.123Z"`
}

func newAuditLog(entry models.AuditLog) AuditLog {
	data := AuditLog{
		ID:          entry.ID.String(),
		ActorID:     entry.ActorID.String(),
		ActorEmail:  entry.ActorEmail,
		TargetEmail: entry.TargetEmail,
		Action:      entry.Action,
		Detail:      entry.Detail,
		RequestIP:   entry.RequestIP,
		UserAgent:   entry.RequestUserAgent,
		CreatedAt:   entry.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
	}

	if entry.TargetID != nil {
		data.TargetID = entry.TargetID.String()
	}

	return data
}

// GetAuditLogs lists audit entries, newest first. The optional action
// query parameter filters by glob pattern, e.g. "admin.*".
func GetAuditLogs(c *gin.Context) {
	entries, err := models.AuditLogs(models.DB, 500)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	pattern := c.Query("action")

	data := make([]AuditLog, 0, len(entries))
	for _, entry := range entries {
		if pattern != "" && !glob.Glob(pattern, entry.Action) {
			continue
		}

		data = append(data, newAuditLog(entry))
	}

	c.JSON(http.StatusOK, AuditLogListResponse{Data: data})
}
