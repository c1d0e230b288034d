package auth

import (
	"github.com/tu-usuario/billing-ledger/internal/application/dto"
	"github.com/tu-usuario/billing-ledger/internal/domain"
	"github.com/tu-usuario/billing-ledger/internal/domain/entity"
	"github.com/tu-usuario/billing-ledger/internal/domain/repository"
	"github.com/tu-usuario/billing-ledger/pkg/jwt"
)

// JWTConfig configuración para la generación de tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase caso de uso de autenticación.
//
// Las contraseñas se guardan y comparan en texto plano: es una debilidad
// conocida que se conserva porque los archivos de usuarios existentes las
// almacenan así y cambiarlas de formato rompería el login.
type AuthUseCase struct {
	ledger repository.Ledger
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(ledger repository.Ledger, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{ledger: ledger, jwtCfg: jwtCfg}
}

// Login recorre los usuarios buscando una coincidencia exacta de nombre y
// contraseña (sensible a mayúsculas). Si acierta emite un token de sesión
// HS256; si no, domain.ErrUnauthorized sin distinguir cuál campo falló.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	for _, u := range uc.ledger.LoadUsers() {
		if !u.Login(in.Name, in.Password) {
			continue
		}
		token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, u.Name, string(u.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
		if err != nil {
			return nil, err
		}
		bills := uc.ledger.LoadBillsForUser(u.ID)
		resp := dto.UserResponse{
			ID:           u.ID,
			Role:         string(u.Role),
			Name:         u.Name,
			Email:        u.Email,
			Industry:     u.Industry,
			TotalBills:   u.TotalBills(bills),
			TotalRevenue: u.TotalRevenue(bills),
		}
		if u.Role == entity.RoleCustomer {
			resp.StartDate = u.StartDate.Format("2006-01-02")
		}
		return &dto.LoginResponse{Token: token, User: resp}, nil
	}
	return nil, domain.ErrUnauthorized
}
