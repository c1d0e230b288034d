package textfile

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/tu-usuario/billing-ledger/internal/domain"
	"github.com/tu-usuario/billing-ledger/internal/domain/entity"
	"github.com/tu-usuario/billing-ledger/internal/domain/repository"
	"github.com/tu-usuario/billing-ledger/pkg/config"
	"github.com/tu-usuario/billing-ledger/pkg/logger"
)

var _ repository.Ledger = (*Store)(nil)

// Store es el único guardián del estado durable: mantiene una caché en
// memoria de usuarios y facturas respaldada por los dos archivos de texto.
//
// Contrato de caché: nil significa caché fría (la próxima lectura recorre el
// archivo); toda escritura la reemplaza por una copia de lo escrito o la
// anula para forzar recarga. Las lecturas devuelven siempre copias
// defensivas; el llamador nunca debe retener un handle a la caché interna.
//
// El diseño asume un único proceso y una única sesión contra los archivos;
// no hay locking ni detección de escritores concurrentes.
type Store struct {
	usersPath string
	billsPath string
	log       *logger.Logger

	cachedUsers []entity.User
	cachedBills []entity.Bill
	// lastBillID solo se alimenta de los IDs observados en cargas y
	// appends; antes de la primera carga GenerateBillID puede reemitir 1.
	lastBillID int
}

// NewStore construye el adaptador de persistencia sobre archivos planos.
func NewStore(cfg config.LedgerConfig, log *logger.Logger) *Store {
	return &Store{
		usersPath: cfg.UsersFile,
		billsPath: cfg.BillsFile,
		log:       log,
	}
}

// LoadUsers devuelve todos los usuarios. Con caché fría lee el archivo línea
// a línea; una línea mal formada se salta con un warn y el resto del archivo
// carga igual. Archivo ausente equivale a cero registros.
func (s *Store) LoadUsers() []entity.User {
	if s.cachedUsers != nil {
		return copyUsers(s.cachedUsers)
	}

	users := []entity.User{}
	f, err := os.Open(s.usersPath)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Debug().Str("file", s.usersPath).Msg("archivo de usuarios ausente, almacén vacío")
		} else {
			s.log.Warn().Err(err).Str("file", s.usersPath).Msg("no se pudo leer el archivo de usuarios")
		}
		return users
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		u, err := DecodeUser(line)
		if err != nil {
			s.log.Warn().Err(err).Str("line", line).Msg("línea de usuario inválida, se salta")
			continue
		}
		users = append(users, *u)
	}
	if err := sc.Err(); err != nil {
		s.log.Warn().Err(err).Str("file", s.usersPath).Msg("lectura de usuarios interrumpida")
		return users
	}

	s.cachedUsers = copyUsers(users)
	s.log.Info().Int("count", len(users)).Str("file", s.usersPath).Msg("usuarios cargados")
	return users
}

// LoadBills devuelve todas las facturas persistibles y alimenta el contador
// de IDs con el máximo observado.
func (s *Store) LoadBills() []entity.Bill {
	if s.cachedBills != nil {
		return copyBills(s.cachedBills)
	}

	bills := []entity.Bill{}
	f, err := os.Open(s.billsPath)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Debug().Str("file", s.billsPath).Msg("archivo de facturas ausente, almacén vacío")
		} else {
			s.log.Warn().Err(err).Str("file", s.billsPath).Msg("no se pudo leer el archivo de facturas")
		}
		return bills
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		b, err := DecodeBill(line)
		if err != nil {
			s.log.Warn().Err(err).Int("line", lineNo).Str("raw", line).Msg("línea de factura inválida, se salta")
			continue
		}
		bills = append(bills, *b)
		if b.ID > s.lastBillID {
			s.lastBillID = b.ID
		}
	}
	if err := sc.Err(); err != nil {
		s.log.Warn().Err(err).Str("file", s.billsPath).Msg("lectura de facturas interrumpida")
		return bills
	}

	s.cachedBills = copyBills(bills)
	s.log.Info().Int("count", len(bills)).Str("file", s.billsPath).Msg("facturas cargadas")
	return bills
}

// LoadBillsForUser devuelve las facturas asociadas al usuario, sea como
// emisor o como receptor.
func (s *Store) LoadBillsForUser(userID int) []entity.Bill {
	out := []entity.Bill{}
	for _, b := range s.LoadBills() {
		if b.References(userID) {
			out = append(out, b)
		}
	}
	return out
}

// SaveUsers sobrescribe el archivo de usuarios con la lista dada (escritura
// snapshot, no append) y reemplaza la caché por una copia de la lista.
func (s *Store) SaveUsers(users []entity.User) error {
	f, err := os.Create(s.usersPath)
	if err != nil {
		return fmt.Errorf("crear archivo de usuarios: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i := range users {
		if _, err := w.WriteString(EncodeUser(&users[i]) + "\n"); err != nil {
			return fmt.Errorf("escribir usuario %d: %w", users[i].ID, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("guardar usuarios: %w", err)
	}

	s.cachedUsers = copyUsers(users)
	s.log.Info().Int("count", len(users)).Str("file", s.usersPath).Msg("usuarios guardados")
	return nil
}

// SaveBills sobrescribe el archivo de facturas. Una factura sin fecha o sin
// vencimiento se omite de la escritura con un warn, sin abortar el resto.
// La caché queda reemplazada por una copia de la lista recibida.
func (s *Store) SaveBills(bills []entity.Bill) error {
	f, err := os.Create(s.billsPath)
	if err != nil {
		return fmt.Errorf("crear archivo de facturas: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	written := 0
	for i := range bills {
		b := &bills[i]
		if !b.Persistable() {
			s.log.Warn().Int("bill_id", b.ID).Msg("factura sin fecha o vencimiento, se omite de la escritura")
			continue
		}
		if _, err := w.WriteString(EncodeBill(b) + "\n"); err != nil {
			return fmt.Errorf("escribir factura %d: %w", b.ID, err)
		}
		written++
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("guardar facturas: %w", err)
	}

	s.cachedBills = copyBills(bills)
	s.log.Info().Int("count", written).Str("file", s.billsPath).Msg("facturas guardadas")
	return nil
}

// SaveBill agrega una única factura al final del archivo sin reescribir el
// resto. Exige fecha y vencimiento presentes; al tener éxito anula la caché
// para que la próxima lectura refleje el registro agregado, y avanza el
// contador de IDs si el nuevo lo supera.
func (s *Store) SaveBill(bill *entity.Bill) error {
	if bill == nil || !bill.Persistable() {
		return domain.ErrInvalidBill
	}

	f, err := os.OpenFile(s.billsPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("abrir archivo de facturas: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(EncodeBill(bill) + "\n"); err != nil {
		return fmt.Errorf("agregar factura %d: %w", bill.ID, err)
	}

	if bill.ID > s.lastBillID {
		s.lastBillID = bill.ID
	}
	s.cachedBills = nil // forzar recarga en la próxima lectura
	s.log.Info().Int("bill_id", bill.ID).Str("file", s.billsPath).Msg("factura agregada")
	return nil
}

// GenerateBillID devuelve el siguiente ID de factura y avanza el contador.
// No es reentrante entre llamadores concurrentes: el contrato del almacén es
// de un solo proceso.
func (s *Store) GenerateBillID() int {
	s.lastBillID++
	return s.lastBillID
}

// GenerateUserID devuelve max(ID existente)+1, o 1 si no hay usuarios. A
// diferencia de las facturas no hay contador persistente: cada llamada
// recorre todos los usuarios, así que borrar el de ID más alto puede
// provocar reutilización.
func (s *Store) GenerateUserID() int {
	users := s.LoadUsers()
	max := 0
	for i := range users {
		if users[i].ID > max {
			max = users[i].ID
		}
	}
	return max + 1
}

// DeleteUser elimina de la colección dada al usuario con ese ID y persiste
// el resultado. Si el eliminado era Company o Customer arrastra en cascada
// todas las facturas que lo referencian; borrar un Admin nunca toca
// facturas.
func (s *Store) DeleteUser(userID int, users []entity.User) error {
	var deleted *entity.User
	remaining := make([]entity.User, 0, len(users))
	for i := range users {
		if users[i].ID == userID {
			if deleted == nil {
				u := users[i]
				deleted = &u
			}
			continue
		}
		remaining = append(remaining, users[i])
	}
	if deleted == nil {
		s.log.Warn().Int("user_id", userID).Msg("usuario a eliminar no encontrado")
		return domain.ErrUserNotFound
	}

	if err := s.SaveUsers(remaining); err != nil {
		return err
	}

	if deleted.Role != entity.RoleCompany && deleted.Role != entity.RoleCustomer {
		s.log.Info().Int("user_id", userID).Msg("admin eliminado, sin facturas asociadas")
		return nil
	}

	bills := s.LoadBills()
	kept := make([]entity.Bill, 0, len(bills))
	for i := range bills {
		if !bills[i].References(userID) {
			kept = append(kept, bills[i])
		}
	}
	if removed := len(bills) - len(kept); removed > 0 {
		s.log.Info().Int("user_id", userID).Int("removed", removed).Msg("facturas asociadas eliminadas en cascada")
	}
	return s.SaveBills(kept)
}

// DeleteBills elimina todas las facturas cuyo ID esté en la lista y
// persiste. Devuelve cuántas se eliminaron, para registro y confirmación.
func (s *Store) DeleteBills(billIDs []int) (int, error) {
	ids := make(map[int]struct{}, len(billIDs))
	for _, id := range billIDs {
		ids[id] = struct{}{}
	}

	bills := s.LoadBills()
	kept := make([]entity.Bill, 0, len(bills))
	for i := range bills {
		if _, ok := ids[bills[i].ID]; !ok {
			kept = append(kept, bills[i])
		}
	}
	removed := len(bills) - len(kept)
	if err := s.SaveBills(kept); err != nil {
		return 0, err
	}
	s.log.Info().Int("removed", removed).Ints("bill_ids", billIDs).Msg("facturas eliminadas")
	return removed, nil
}

// UpdateUserAndBills reemplaza el registro del usuario (semántica
// quitar-y-agregar: la identidad es el ID, no la referencia) y luego
// reescribe los nombres desnormalizados de todas las facturas que lo
// referencian. Así se propagan los renombres sin claves foráneas.
func (s *Store) UpdateUserAndBills(updated *entity.User) error {
	users := s.LoadUsers()
	kept := make([]entity.User, 0, len(users)+1)
	for i := range users {
		if users[i].ID != updated.ID {
			kept = append(kept, users[i])
		}
	}
	kept = append(kept, *updated)
	if err := s.SaveUsers(kept); err != nil {
		return err
	}

	bills := s.LoadBills()
	for i := range bills {
		if bills[i].CompanyID == updated.ID {
			bills[i].CompanyName = updated.Name
		}
		if bills[i].CustomerID == updated.ID {
			bills[i].CustomerName = updated.Name
		}
	}
	return s.SaveBills(bills)
}

// UpdateBillStatus fija la marca de pago de la primera factura con ese ID y
// persiste la colección completa. Si el ID no existe la colección se
// persiste igual, sin cambios.
func (s *Store) UpdateBillStatus(billID int, paid bool) error {
	bills := s.LoadBills()
	for i := range bills {
		if bills[i].ID == billID {
			bills[i].Paid = paid
			break
		}
	}
	return s.SaveBills(bills)
}

// FindUserByID busca linealmente sobre una carga fresca; gana la primera
// coincidencia.
func (s *Store) FindUserByID(userID int) (*entity.User, error) {
	for _, u := range s.LoadUsers() {
		if u.ID == userID {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// FindBillByID busca linealmente sobre una carga fresca; gana la primera
// coincidencia.
func (s *Store) FindBillByID(billID int) (*entity.Bill, error) {
	for _, b := range s.LoadBills() {
		if b.ID == billID {
			return &b, nil
		}
	}
	return nil, domain.ErrBillNotFound
}

func copyUsers(users []entity.User) []entity.User {
	out := make([]entity.User, len(users))
	copy(out, users)
	return out
}

func copyBills(bills []entity.Bill) []entity.Bill {
	out := make([]entity.Bill, len(bills))
	copy(out, bills)
	for i := range out {
		if out[i].DueDate != nil {
			due := *out[i].DueDate
			out[i].DueDate = &due
		}
	}
	return out
}
