package usecase_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/billing-ledger/internal/application/dto"
	"github.com/tu-usuario/billing-ledger/internal/application/usecase"
	"github.com/tu-usuario/billing-ledger/internal/domain"
	"github.com/tu-usuario/billing-ledger/internal/domain/entity"
	"github.com/tu-usuario/billing-ledger/internal/infrastructure/textfile"
	"github.com/tu-usuario/billing-ledger/pkg/config"
	"github.com/tu-usuario/billing-ledger/pkg/logger"
)

func newLedger(t *testing.T) *textfile.Store {
	t.Helper()
	dir := t.TempDir()
	return textfile.NewStore(config.LedgerConfig{
		UsersFile: filepath.Join(dir, "users.txt"),
		BillsFile: filepath.Join(dir, "bills.txt"),
	}, logger.Nop())
}

func TestUserCreate_AsignaIDsConsecutivos(t *testing.T) {
	uc := usecase.NewUserUseCase(newLedger(t), time.UTC)

	a, err := uc.Create(dto.CreateUserRequest{Role: entity.RoleAdmin, Name: "root", Password: "pw", Email: "r@x.com"})
	require.NoError(t, err)
	b, err := uc.Create(dto.CreateUserRequest{Role: entity.RoleCompany, Name: "Acme", Password: "pw", Email: "a@x.com", Industry: "Energía"})
	require.NoError(t, err)

	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)
	assert.Equal(t, "Energía", b.Industry)
}

func TestUserCreate_NombreUnicoSinMayusculas(t *testing.T) {
	uc := usecase.NewUserUseCase(newLedger(t), time.UTC)

	_, err := uc.Create(dto.CreateUserRequest{Role: entity.RoleAdmin, Name: "Ana", Password: "pw", Email: "a@x.com"})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateUserRequest{Role: entity.RoleCustomer, Name: "ANA", Password: "pw", Email: "b@x.com"})
	assert.ErrorIs(t, err, domain.ErrNameAlreadyExists,
		"la unicidad de nombre no distingue mayúsculas")
}

func TestUserCreate_EntradaInvalida(t *testing.T) {
	uc := usecase.NewUserUseCase(newLedger(t), time.UTC)

	_, err := uc.Create(dto.CreateUserRequest{Role: "Gerente", Name: "x", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(dto.CreateUserRequest{Role: entity.RoleAdmin, Name: "   ", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(dto.CreateUserRequest{Role: entity.RoleAdmin, Name: "x", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserCreate_ClienteConFechaDeInicioPorDefecto(t *testing.T) {
	uc := usecase.NewUserUseCase(newLedger(t), time.UTC)

	got, err := uc.Create(dto.CreateUserRequest{Role: entity.RoleCustomer, Name: "Ana", Password: "pw", Email: "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), got.StartDate,
		"sin fecha de inicio explícita se toma la actual")
}

func TestUserUpdate_PropagaRenombreALasFacturas(t *testing.T) {
	ledger := newLedger(t)
	users := usecase.NewUserUseCase(ledger, time.UTC)
	bills := usecase.NewBillUseCase(ledger, time.UTC)

	company, err := users.Create(dto.CreateUserRequest{Role: entity.RoleCompany, Name: "Acme", Password: "pw", Email: "a@x.com"})
	require.NoError(t, err)
	customer, err := users.Create(dto.CreateUserRequest{Role: entity.RoleCustomer, Name: "Ana", Password: "pw", Email: "c@x.com"})
	require.NoError(t, err)

	created, err := bills.Create(dto.CreateBillRequest{
		Value:      decimal.NewFromInt(100),
		CustomerID: customer.ID,
		CompanyID:  company.ID,
		DueDate:    time.Now().AddDate(0, 1, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme", created.CompanyName)

	_, err = users.Update(dto.UpdateUserRequest{ID: company.ID, Name: "Acme Corp", Email: "a@x.com"})
	require.NoError(t, err)

	got, err := bills.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", got.CompanyName,
		"el renombre llega a la instantánea desnormalizada de la factura")
}

func TestUserUpdate_NoEncontrado(t *testing.T) {
	uc := usecase.NewUserUseCase(newLedger(t), time.UTC)
	_, err := uc.Update(dto.UpdateUserRequest{ID: 99, Name: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserDelete_Cascada(t *testing.T) {
	ledger := newLedger(t)
	users := usecase.NewUserUseCase(ledger, time.UTC)
	bills := usecase.NewBillUseCase(ledger, time.UTC)

	company, err := users.Create(dto.CreateUserRequest{Role: entity.RoleCompany, Name: "Acme", Password: "pw", Email: "a@x.com"})
	require.NoError(t, err)
	customer, err := users.Create(dto.CreateUserRequest{Role: entity.RoleCustomer, Name: "Ana", Password: "pw", Email: "c@x.com"})
	require.NoError(t, err)
	_, err = bills.Create(dto.CreateBillRequest{
		Value:      decimal.NewFromInt(100),
		CustomerID: customer.ID,
		CompanyID:  company.ID,
		DueDate:    time.Now().AddDate(0, 1, 0),
	})
	require.NoError(t, err)

	require.NoError(t, users.Delete(company.ID))

	assert.Len(t, users.List(), 1)
	assert.Empty(t, bills.List(dto.BillFilterRequest{Status: "All Bills"}))
}

func TestUserList_IncluyeMetricas(t *testing.T) {
	ledger := newLedger(t)
	users := usecase.NewUserUseCase(ledger, time.UTC)
	bills := usecase.NewBillUseCase(ledger, time.UTC)

	company, err := users.Create(dto.CreateUserRequest{Role: entity.RoleCompany, Name: "Acme", Password: "pw", Email: "a@x.com"})
	require.NoError(t, err)
	customer, err := users.Create(dto.CreateUserRequest{Role: entity.RoleCustomer, Name: "Ana", Password: "pw", Email: "c@x.com"})
	require.NoError(t, err)

	b, err := bills.Create(dto.CreateBillRequest{
		Value:      decimal.NewFromInt(250),
		CustomerID: customer.ID,
		CompanyID:  company.ID,
		DueDate:    time.Now().AddDate(0, 1, 0),
	})
	require.NoError(t, err)

	got, err := users.Get(company.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalBills)
	assert.True(t, got.TotalRevenue.Equal(decimal.NewFromInt(250)),
		"la empresa suma la factura aunque esté impaga")

	// el cliente aún no pagó: su facturación es cero
	gotCustomer, err := users.Get(customer.ID)
	require.NoError(t, err)
	assert.True(t, gotCustomer.TotalRevenue.IsZero())

	require.NoError(t, bills.MarkPaid(b.ID, true))
	gotCustomer, err = users.Get(customer.ID)
	require.NoError(t, err)
	assert.True(t, gotCustomer.TotalRevenue.Equal(decimal.NewFromInt(250)))
}
