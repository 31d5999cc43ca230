package dto

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse sesión autenticada (sin password).
type UserResponse struct {
	Email   string `json:"email"`
	Name    string `json:"nombre"`
	Role    string `json:"rol"`     // desarrollador | cliente
	ScopeID int64  `json:"alcance"` // id de desarrollador o de cliente según el rol
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
