package textfile_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/billing-ledger/internal/domain"
	"github.com/tu-usuario/billing-ledger/internal/domain/entity"
	"github.com/tu-usuario/billing-ledger/internal/infrastructure/textfile"
	"github.com/tu-usuario/billing-ledger/pkg/config"
	"github.com/tu-usuario/billing-ledger/pkg/logger"
)

func newStore(t *testing.T) (*textfile.Store, string, string) {
	t.Helper()
	dir := t.TempDir()
	usersPath := filepath.Join(dir, "users.txt")
	billsPath := filepath.Join(dir, "bills.txt")
	s := textfile.NewStore(config.LedgerConfig{UsersFile: usersPath, BillsFile: billsPath}, logger.Nop())
	return s, usersPath, billsPath
}

func testBill(id, customerID, companyID int, paid bool) entity.Bill {
	due := time.UnixMilli(1700086400000)
	return entity.Bill{
		ID:           id,
		Value:        decimal.NewFromInt(100),
		CustomerID:   customerID,
		CompanyID:    companyID,
		CustomerName: "Ana",
		CompanyName:  "Acme",
		Date:         time.UnixMilli(1700000000000),
		DueDate:      &due,
		Paid:         paid,
	}
}

func TestLoadUsers_ArchivoAusente(t *testing.T) {
	s, _, _ := newStore(t)
	assert.Empty(t, s.LoadUsers(), "archivo ausente equivale a cero registros, no a error")
}

func TestLoadUsers_SaltaLineaInvalida(t *testing.T) {
	s, usersPath, _ := newStore(t)
	content := "Admin,root,pw,1,root@x.com\n" +
		"Company,acme,pw\n" + // aridad incorrecta
		"\n" // línea en blanco, se salta en silencio
	require.NoError(t, os.WriteFile(usersPath, []byte(content), 0o644))

	users := s.LoadUsers()
	require.Len(t, users, 1, "la línea mala no debe impedir cargar el resto")
	assert.Equal(t, "root", users[0].Name)
}

func TestSaveUsers_RoundTripYCache(t *testing.T) {
	s, _, _ := newStore(t)
	users := []entity.User{
		{ID: 1, Role: entity.RoleAdmin, Name: "root", Password: "pw", Email: "r@x.com"},
		{ID: 2, Role: entity.RoleCompany, Name: "Acme", Password: "pw", Email: "a@x.com", Industry: "Energía"},
	}
	require.NoError(t, s.SaveUsers(users))

	got := s.LoadUsers()
	require.Len(t, got, 2)
	assert.Equal(t, "Acme", got[1].Name)

	// la lectura devuelve una copia defensiva: mutarla no toca la caché
	got[0].Name = "intruso"
	assert.Equal(t, "root", s.LoadUsers()[0].Name)
}

func TestSaveBills_CeroFacturas(t *testing.T) {
	s, _, billsPath := newStore(t)
	require.NoError(t, s.SaveBills([]entity.Bill{}))

	info, err := os.Stat(billsPath)
	require.NoError(t, err, "guardar cero facturas debe crear el archivo")
	assert.Zero(t, info.Size())
	assert.Empty(t, s.LoadBills())
}

func TestSaveBills_OmiteFacturaSinVencimiento(t *testing.T) {
	s, usersPath, billsPath := newStore(t)
	conDue := testBill(1, 10, 20, false)
	sinDue := testBill(2, 10, 20, false)
	sinDue.DueDate = nil

	require.NoError(t, s.SaveBills([]entity.Bill{conDue, sinDue}))

	// un almacén nuevo sobre el mismo archivo fuerza la relectura desde
	// disco: la factura sin vencimiento nunca se reconstruye
	fresh := textfile.NewStore(config.LedgerConfig{UsersFile: usersPath, BillsFile: billsPath}, logger.Nop())
	reloaded := fresh.LoadBills()
	require.Len(t, reloaded, 1)
	assert.Equal(t, 1, reloaded[0].ID)
}

func TestSaveBill_ValidaYAgrega(t *testing.T) {
	s, _, _ := newStore(t)

	invalida := testBill(1, 10, 20, false)
	invalida.DueDate = nil
	assert.ErrorIs(t, s.SaveBill(&invalida), domain.ErrInvalidBill)

	b1 := testBill(1, 10, 20, false)
	require.NoError(t, s.SaveBill(&b1))
	b2 := testBill(2, 10, 20, true)
	require.NoError(t, s.SaveBill(&b2))

	// el append invalida la caché: la próxima lectura ve ambos registros
	bills := s.LoadBills()
	require.Len(t, bills, 2)
	assert.Equal(t, 2, bills[1].ID)
}

func TestGenerateBillID_Secuencia(t *testing.T) {
	s, _, billsPath := newStore(t)
	lines := ""
	for _, b := range []entity.Bill{testBill(3, 1, 2, false), testBill(7, 1, 2, false)} {
		lines += textfile.EncodeBill(&b) + "\n"
	}
	require.NoError(t, os.WriteFile(billsPath, []byte(lines), 0o644))

	s.LoadBills() // siembra el contador con el máximo observado
	assert.Equal(t, 8, s.GenerateBillID())
	assert.Equal(t, 9, s.GenerateBillID(), "dos llamadas seguidas sin recarga avanzan el contador")
}

func TestGenerateBillID_SinCargaPreviaReemiteUno(t *testing.T) {
	s, _, _ := newStore(t)
	// contrato documentado: antes de la primera carga el contador está frío
	assert.Equal(t, 1, s.GenerateBillID())
}

func TestGenerateUserID(t *testing.T) {
	s, _, _ := newStore(t)
	assert.Equal(t, 1, s.GenerateUserID(), "sin usuarios el primer ID es 1")

	require.NoError(t, s.SaveUsers([]entity.User{
		{ID: 4, Role: entity.RoleAdmin, Name: "a", Password: "p", Email: "e"},
		{ID: 9, Role: entity.RoleCompany, Name: "b", Password: "p", Email: "e"},
	}))
	assert.Equal(t, 10, s.GenerateUserID())
}

func TestDeleteUser_CascadaParaCompany(t *testing.T) {
	s, _, _ := newStore(t)
	users := []entity.User{
		{ID: 5, Role: entity.RoleCompany, Name: "Acme", Password: "p", Email: "e"},
		{ID: 6, Role: entity.RoleCustomer, Name: "Ana", Password: "p", Email: "e"},
	}
	require.NoError(t, s.SaveUsers(users))
	require.NoError(t, s.SaveBills([]entity.Bill{
		testBill(1, 6, 5, false),
		testBill(2, 6, 5, true),
		testBill(3, 99, 5, false),
		testBill(4, 6, 98, false), // de otra empresa, debe sobrevivir
	}))

	require.NoError(t, s.DeleteUser(5, s.LoadUsers()))

	assert.Len(t, s.LoadUsers(), 1)
	bills := s.LoadBills()
	require.Len(t, bills, 1, "las tres facturas de la empresa caen en cascada")
	assert.Equal(t, 4, bills[0].ID)
}

func TestDeleteUser_AdminNoTocaFacturas(t *testing.T) {
	s, _, _ := newStore(t)
	require.NoError(t, s.SaveUsers([]entity.User{
		{ID: 1, Role: entity.RoleAdmin, Name: "root", Password: "p", Email: "e"},
	}))
	require.NoError(t, s.SaveBills([]entity.Bill{testBill(1, 10, 20, false)}))

	require.NoError(t, s.DeleteUser(1, s.LoadUsers()))

	assert.Empty(t, s.LoadUsers())
	assert.Len(t, s.LoadBills(), 1, "borrar un Admin nunca arrastra facturas")
}

func TestDeleteUser_NoEncontrado(t *testing.T) {
	s, _, _ := newStore(t)
	require.NoError(t, s.SaveUsers([]entity.User{
		{ID: 1, Role: entity.RoleAdmin, Name: "root", Password: "p", Email: "e"},
	}))
	assert.ErrorIs(t, s.DeleteUser(99, s.LoadUsers()), domain.ErrUserNotFound)
	assert.Len(t, s.LoadUsers(), 1, "nada se persiste si el usuario no existe")
}

func TestDeleteBills_ReportaEliminadas(t *testing.T) {
	s, _, _ := newStore(t)
	require.NoError(t, s.SaveBills([]entity.Bill{
		testBill(1, 1, 2, false), testBill(2, 1, 2, false), testBill(3, 1, 2, false),
	}))

	removed, err := s.DeleteBills([]int{1, 3, 42})
	require.NoError(t, err)
	assert.Equal(t, 2, removed, "el 42 no existe y no cuenta")

	bills := s.LoadBills()
	require.Len(t, bills, 1)
	assert.Equal(t, 2, bills[0].ID)
}

func TestUpdateUserAndBills_PropagaRenombre(t *testing.T) {
	s, _, _ := newStore(t)
	require.NoError(t, s.SaveUsers([]entity.User{
		{ID: 5, Role: entity.RoleCompany, Name: "Acme", Password: "p", Email: "e"},
	}))
	b1 := testBill(1, 10, 5, false)
	b2 := testBill(2, 10, 5, false)
	otra := testBill(3, 10, 77, false)
	otra.CompanyName = "Globex"
	require.NoError(t, s.SaveBills([]entity.Bill{b1, b2, otra}))

	updated := entity.User{ID: 5, Role: entity.RoleCompany, Name: "Acme Corp", Password: "p", Email: "e"}
	require.NoError(t, s.UpdateUserAndBills(&updated))

	u, err := s.FindUserByID(5)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", u.Name)

	for _, b := range s.LoadBills() {
		if b.CompanyID == 5 {
			assert.Equal(t, "Acme Corp", b.CompanyName)
		} else {
			assert.Equal(t, "Globex", b.CompanyName, "las facturas de otras empresas no se tocan")
		}
	}
}

func TestUpdateBillStatus(t *testing.T) {
	s, _, _ := newStore(t)
	require.NoError(t, s.SaveBills([]entity.Bill{testBill(1, 10, 20, false)}))

	require.NoError(t, s.UpdateBillStatus(1, true))
	b, err := s.FindBillByID(1)
	require.NoError(t, err)
	assert.True(t, b.Paid)
}

func TestFindByID_NoEncontrado(t *testing.T) {
	s, _, _ := newStore(t)
	_, err := s.FindUserByID(99)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = s.FindBillByID(99)
	assert.ErrorIs(t, err, domain.ErrBillNotFound)
}

func TestLoadBills_SaltaLineaInvalida(t *testing.T) {
	s, _, billsPath := newStore(t)
	buena := testBill(1, 10, 20, false)
	content := textfile.EncodeBill(&buena) + "\n" +
		"basura|sin|sentido\n" +
		"2|100|10|20|Ana|Acme|1700000000000||false\n" // vencimiento vacío
	require.NoError(t, os.WriteFile(billsPath, []byte(content), 0o644))

	bills := s.LoadBills()
	require.Len(t, bills, 1)
	assert.Equal(t, 1, bills[0].ID)
}

func TestLoadBillsForUser(t *testing.T) {
	s, _, _ := newStore(t)
	require.NoError(t, s.SaveBills([]entity.Bill{
		testBill(1, 6, 5, false),  // cliente 6
		testBill(2, 7, 5, false),  // empresa 5
		testBill(3, 7, 99, false), // ajena a ambos consultados
	}))

	assert.Len(t, s.LoadBillsForUser(6), 1)
	assert.Len(t, s.LoadBillsForUser(5), 2)
	assert.Empty(t, s.LoadBillsForUser(42))
}
