package repository

import (
	"context"

	"github.com/jhoicas/leox-api/internal/domain/entity"
)

// UserRepository puerto de lectura de cuentas de acceso.
type UserRepository interface {
	// FindByEmail devuelve (nil, nil) si no existe la cuenta.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
