package domain

import "github.com/google/uuid"

// Role identifies which kind of account a principal is.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleMerchant Role = "merchant"
	RoleWorker   Role = "worker"
)

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleAdmin, RoleMerchant, RoleWorker:
		return true
	}
	return false
}

// Principal is an authenticated identity, resolved once at the HTTP boundary
// and carried through the request instead of re-dispatching on role strings.
type Principal struct {
	ID   uuid.UUID
	Role Role
}

// Admin is a platform operator account.
type Admin struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose
}
