package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/misfinanzas/backend/internal/identity"
	"gorm.io/gorm"
)

// User is an account. Every other row in the database is scoped to
// exactly one user; queries never cross this boundary.
type User struct {
	DefaultModel
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string `json:"-"`
	Role         Role
	Active       bool
	DeletedAt    *time.Time // soft delete marker set by admins, not by gorm
	FirebaseUID  *string    `gorm:"uniqueIndex"` // identity federation link, nil when never linked
	AuthProvider string
}

// Usable reports whether the account may log in and issue requests.
func (u User) Usable() bool {
	return u.Active && u.DeletedAt == nil
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return nil
}

// NewUser creates an account with the free role.
func NewUser(db *gorm.DB, email, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return User{}, ErrEmailInvalid
	}

	hash, err := identity.HashPassword(password)
	if err != nil {
		return User{}, err
	}

	user := User{
		Email:        email,
		PasswordHash: hash,
		Role:         RoleFree,
		Active:       true,
	}

	err = db.Create(&user).Error
	if err != nil {
		return User{}, err
	}

	return user, nil
}

// Authenticate verifies a password against the stored credential.
// Suspended and deleted accounts fail authentication like unknown
// emails do.
func Authenticate(db *gorm.DB, email, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return User{}, ErrNotAuthorized
	}

	// The email predicate must be a string condition: a struct condition
	// would drop the zero value and match the first user in the table.
	var user User
	err := db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return User{}, err
	}

	if !user.Usable() || !identity.CheckPassword(password, user.PasswordHash) {
		return User{}, ErrNotAuthorized
	}

	return user, nil
}

// UserByID fetches a user.
func UserByID(db *gorm.DB, id uuid.UUID) (User, error) {
	var user User
	err := db.First(&user, "id = ?", id).Error
	return user, err
}

// CountOwners returns the number of accounts holding the owner role.
func CountOwners(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&User{}).Where(&User{Role: RoleOwner}).Count(&count).Error
	return count, err
}
