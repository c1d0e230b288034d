package usecase

import (
	"strings"
	"time"

	"github.com/tu-usuario/billing-ledger/internal/application/dto"
	"github.com/tu-usuario/billing-ledger/internal/domain"
	"github.com/tu-usuario/billing-ledger/internal/domain/entity"
	"github.com/tu-usuario/billing-ledger/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// UserUseCase aplica las reglas de negocio de usuarios: alta con unicidad de
// nombre, edición con propagación de renombres y baja con cascada.
type UserUseCase struct {
	ledger repository.Ledger
	now    func() time.Time
}

// NewUserUseCase construye el caso de uso. loc es la zona de referencia para
// las fechas por defecto.
func NewUserUseCase(ledger repository.Ledger, loc *time.Location) *UserUseCase {
	return &UserUseCase{
		ledger: ledger,
		now:    func() time.Time { return time.Now().In(loc) },
	}
}

// Create da de alta un usuario: valida rol y nombre, verifica que el nombre
// no exista ya (sin distinguir mayúsculas), asigna el siguiente ID y
// persiste la colección completa.
func (uc *UserUseCase) Create(in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !in.Role.Valid() || strings.TrimSpace(in.Name) == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	users := uc.ledger.LoadUsers()
	for i := range users {
		if strings.EqualFold(users[i].Name, in.Name) {
			return nil, domain.ErrNameAlreadyExists
		}
	}

	u := entity.User{
		ID:       uc.ledger.GenerateUserID(),
		Role:     in.Role,
		Name:     in.Name,
		Password: in.Password,
		Email:    in.Email,
	}
	switch in.Role {
	case entity.RoleCompany:
		u.Industry = in.Industry
	case entity.RoleCustomer:
		u.StartDate = in.StartDate
		if u.StartDate.IsZero() {
			u.StartDate = uc.now()
		}
	}

	users = append(users, u)
	if err := uc.ledger.SaveUsers(users); err != nil {
		return nil, err
	}
	return uc.toResponse(&u), nil
}

// Update edita un usuario existente conservando su rol e ID, y propaga el
// posible renombre a los nombres desnormalizados de sus facturas.
func (uc *UserUseCase) Update(in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	current, err := uc.ledger.FindUserByID(in.ID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}

	// Unicidad de nombre contra los demás usuarios (no contra sí mismo).
	for _, u := range uc.ledger.LoadUsers() {
		if u.ID != in.ID && strings.EqualFold(u.Name, in.Name) {
			return nil, domain.ErrNameAlreadyExists
		}
	}

	updated := *current
	updated.Name = in.Name
	if in.Password != "" {
		updated.Password = in.Password
	}
	updated.Email = in.Email
	switch updated.Role {
	case entity.RoleCompany:
		updated.Industry = in.Industry
	case entity.RoleCustomer:
		if !in.StartDate.IsZero() {
			updated.StartDate = in.StartDate
		}
	}

	if err := uc.ledger.UpdateUserAndBills(&updated); err != nil {
		return nil, err
	}
	return uc.toResponse(&updated), nil
}

// Delete elimina al usuario y, si era Company o Customer, todas las
// facturas que lo referencian.
func (uc *UserUseCase) Delete(userID int) error {
	return uc.ledger.DeleteUser(userID, uc.ledger.LoadUsers())
}

// Get devuelve un usuario con sus métricas derivadas.
func (uc *UserUseCase) Get(userID int) (*dto.UserResponse, error) {
	u, err := uc.ledger.FindUserByID(userID)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(u), nil
}

// List devuelve todos los usuarios con sus métricas, en el orden del
// almacén.
func (uc *UserUseCase) List() []dto.UserResponse {
	users := uc.ledger.LoadUsers()
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *uc.toResponse(&users[i]))
	}
	return out
}

func (uc *UserUseCase) toResponse(u *entity.User) *dto.UserResponse {
	bills := uc.ledger.LoadBillsForUser(u.ID)
	resp := &dto.UserResponse{
		ID:           u.ID,
		Role:         string(u.Role),
		Name:         u.Name,
		Email:        u.Email,
		Industry:     u.Industry,
		TotalBills:   u.TotalBills(bills),
		TotalRevenue: u.TotalRevenue(bills),
	}
	if u.Role == entity.RoleCustomer {
		resp.StartDate = u.StartDate.Format(dateLayout)
	}
	return resp
}
