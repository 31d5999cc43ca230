package entity

// Roles válidos para User.
const (
	RoleDeveloper = "desarrollador"
	RoleClient    = "cliente"
)

// User cuenta de acceso. ScopeID es el id de desarrollador o de cliente según Role.
type User struct {
	Email        string
	PasswordHash string // bcrypt hash
	Name         string
	Role         string
	ScopeID      int64
}

// ValidRole indica si role es uno de los roles reconocidos.
func ValidRole(role string) bool {
	return role == RoleDeveloper || role == RoleClient
}
