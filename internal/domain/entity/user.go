package entity

import (
	"time"

	"github.com/tu-usuario/retail-pos/internal/domain/access"
)

// User representa un usuario del sistema (cajero, encargado o administrador).
// El ciclo de vida de la cuenta (Status) y el nivel de autorización (Role) son
// enums cerrados del paquete access; IsActive es independiente del status.
type User struct {
	ID            string
	Email         string
	PasswordHash  string // bcrypt hash, nunca plano en dominio después de persistir
	Name          string
	Role          access.Role
	Status        access.Status
	IsActive      bool
	EmailVerified bool
	// VerifyToken y su expiración solo existen mientras Status es PENDING.
	VerifyToken        string
	VerifyTokenExpires time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Identity proyecta los campos que evalúa el decisor de acceso.
func (u *User) Identity() access.Identity {
	return access.Identity{
		Role:          u.Role,
		Status:        u.Status,
		IsActive:      u.IsActive,
		EmailVerified: u.EmailVerified,
	}
}
