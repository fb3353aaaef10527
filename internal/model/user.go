package model

import "strings"

type UserRole string

const (
	UserRoleAdmin    UserRole = "ADMIN"
	UserRoleOperator UserRole = "OPERATOR"
	UserRoleViewer   UserRole = "VIEWER"
)

// ParseUserRole maps the role tag stored in the auth provider's user
// metadata. Unknown or missing tags become VIEWER.
func ParseUserRole(raw string) UserRole {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "ADMIN", "ADMINISTRADOR":
		return UserRoleAdmin
	case "OPERATOR", "OPERADOR":
		return UserRoleOperator
	default:
		return UserRoleViewer
	}
}

type User struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
	Avatar string   `json:"avatar,omitempty"`
}

// Principal is the caller identity resolved from a bearer token.
type Principal struct {
	UserID string
	Email  string
	Role   UserRole
	Token  string
}

func (p Principal) CanEditBudget() bool {
	return p.Role == UserRoleAdmin || p.Role == UserRoleOperator
}
