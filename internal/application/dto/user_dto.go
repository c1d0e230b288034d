package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/billing-ledger/internal/domain/entity"
)

// CreateUserRequest datos para dar de alta un usuario.
type CreateUserRequest struct {
	Role     entity.Role
	Name     string
	Password string
	Email    string
	// Industry solo aplica a Company.
	Industry string
	// StartDate solo aplica a Customer; en cero se toma la fecha actual.
	StartDate time.Time
}

// UpdateUserRequest datos para editar un usuario existente. El ID identifica
// al registro; el resto de campos reemplazan los actuales.
type UpdateUserRequest struct {
	ID        int
	Name      string
	Password  string
	Email     string
	Industry  string
	StartDate time.Time
}

// UserResponse usuario en respuestas, con sus métricas derivadas.
type UserResponse struct {
	ID           int             `json:"id"`
	Role         string          `json:"role"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Industry     string          `json:"industry,omitempty"`
	StartDate    string          `json:"start_date,omitempty"` // yyyy-mm-dd, solo Customer
	TotalBills   int             `json:"total_bills"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// LoginRequest credenciales de ingreso.
type LoginRequest struct {
	Name     string
	Password string
}

// LoginResponse resultado de un login exitoso: el usuario y su token de
// sesión.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
