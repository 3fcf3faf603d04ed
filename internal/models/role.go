package models

// Role is the access tier of a user account. The set of roles is closed;
// all tier policy lives in this file so that no call site compares role
// strings directly.
type Role string

const (
	RoleFree       Role = "FREE"
	RolePremium    Role = "PREMIUM"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleOwner      Role = "OWNER"
)

// MaxOwners is the maximum number of owner accounts that may ever exist.
// It is enforced by the owner-claim bootstrap operation.
const MaxOwners = 2

// Roles lists all valid roles.
var Roles = []Role{RoleFree, RolePremium, RoleAdmin, RoleSuperAdmin, RoleOwner}

// Level returns the ordering of the role within the tier hierarchy.
// Unknown roles map to 0 so that a corrupted role value can never
// outrank a real one.
func (r Role) Level() int {
	switch r {
	case RoleFree:
		return 10
	case RolePremium:
		return 20
	case RoleAdmin:
		return 30
	case RoleSuperAdmin:
		return 40
	case RoleOwner:
		return 50
	}

	return 0
}

// Valid reports whether the role is part of the closed set.
func (r Role) Valid() bool {
	return r.Level() != 0
}

// IsPlan reports whether the role is one of the subscription plans that
// admins may toggle between.
func (r Role) IsPlan() bool {
	return r == RoleFree || r == RolePremium
}

// AssignableViaAdmin reports whether the role may be handed out through
// the management API at all. The owner role is only obtainable through
// the bootstrap claim.
func (r Role) AssignableViaAdmin() bool {
	return r != RoleOwner
}

// RequiresOwnerActor reports whether assigning the role requires the
// acting user to be an owner.
func (r Role) RequiresOwnerActor() bool {
	return r == RoleSuperAdmin
}

// CanManage reports whether an actor with role actor may act on a target
// with role target. The comparison is strictly greater, so actors of the
// same tier can never act on each other and nobody can act on their own
// account through this path.
func CanManage(actor, target Role) bool {
	return actor.Level() > target.Level()
}

// EnsureCanManage returns ErrNotAuthorized when the actor may not act on
// the target.
func EnsureCanManage(actor, target Role) error {
	if !CanManage(actor, target) {
		return ErrNotAuthorized
	}

	return nil
}
