package auth

import (
	"context"
	"strings"

	"github.com/jhoicas/leox-api/internal/domain/entity"
	"github.com/jhoicas/leox-api/internal/domain/repository"
	"github.com/jhoicas/leox-api/pkg/config"
)

var _ repository.UserRepository = (*DemoAccounts)(nil)

// DemoAccounts cuentas del login simulado, cargadas de configuración.
type DemoAccounts struct {
	byEmail map[string]entity.User
}

// NewDemoAccounts indexa las cuentas por email (sin distinguir mayúsculas).
// Las cuentas con rol desconocido o sin alcance (ScopeID <= 0) se ignoran.
func NewDemoAccounts(accounts []config.DemoAccount) *DemoAccounts {
	m := make(map[string]entity.User, len(accounts))
	for _, a := range accounts {
		if !entity.ValidRole(a.Role) || a.ScopeID <= 0 {
			continue
		}
		name := a.Name
		if name == "" {
			name = a.Email
		}
		m[strings.ToLower(a.Email)] = entity.User{
			Email:        strings.ToLower(a.Email),
			PasswordHash: a.PasswordHash,
			Name:         name,
			Role:         a.Role,
			ScopeID:      a.ScopeID,
		}
	}
	return &DemoAccounts{byEmail: m}
}

// FindByEmail implementa repository.UserRepository.
func (d *DemoAccounts) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := d.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, nil
	}
	return &u, nil
}
