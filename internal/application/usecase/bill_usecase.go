package usecase

import (
	"time"

	"github.com/tu-usuario/billing-ledger/internal/application/dto"
	"github.com/tu-usuario/billing-ledger/internal/domain"
	"github.com/tu-usuario/billing-ledger/internal/domain/billing"
	"github.com/tu-usuario/billing-ledger/internal/domain/entity"
	"github.com/tu-usuario/billing-ledger/internal/domain/repository"
)

// BillUseCase aplica las reglas de negocio de facturas: emisión con
// instantánea de nombres, cambio de estado de pago, borrado masivo y
// listados filtrados.
type BillUseCase struct {
	ledger repository.Ledger
	loc    *time.Location
	now    func() time.Time
}

// NewBillUseCase construye el caso de uso. loc es la zona de referencia
// para "hoy" en los cálculos de vencimiento.
func NewBillUseCase(ledger repository.Ledger, loc *time.Location) *BillUseCase {
	return &BillUseCase{
		ledger: ledger,
		loc:    loc,
		now:    func() time.Time { return time.Now().In(loc) },
	}
}

// Create emite una factura: valida valor positivo y vencimiento no anterior
// a la fecha de emisión (regla del llamador, no del almacén), copia los
// nombres de los usuarios referenciados como instantánea desnormalizada,
// asigna el siguiente ID y agrega el registro al archivo.
func (uc *BillUseCase) Create(in dto.CreateBillRequest) (*dto.BillResponse, error) {
	if !in.Value.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	date := in.Date
	if date.IsZero() {
		date = uc.now()
	}
	if in.DueDate.IsZero() {
		return nil, domain.ErrInvalidBill
	}
	// comparación por día calendario: un vencimiento el mismo día es válido
	if dayOf(in.DueDate, uc.loc).Before(dayOf(date, uc.loc)) {
		return nil, domain.ErrInvalidInput
	}

	customer, err := uc.ledger.FindUserByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	company, err := uc.ledger.FindUserByID(in.CompanyID)
	if err != nil {
		return nil, err
	}
	if customer.Role != entity.RoleCustomer || company.Role != entity.RoleCompany {
		return nil, domain.ErrInvalidInput
	}

	due := in.DueDate
	bill := entity.Bill{
		ID:           uc.ledger.GenerateBillID(),
		Value:        in.Value,
		CustomerID:   customer.ID,
		CompanyID:    company.ID,
		CustomerName: customer.Name,
		CompanyName:  company.Name,
		Date:         date,
		DueDate:      &due,
	}
	if err := uc.ledger.SaveBill(&bill); err != nil {
		return nil, err
	}
	return uc.toResponse(&bill), nil
}

// MarkPaid fija la marca de pago de una factura existente.
func (uc *BillUseCase) MarkPaid(billID int, paid bool) error {
	if _, err := uc.ledger.FindBillByID(billID); err != nil {
		return err
	}
	return uc.ledger.UpdateBillStatus(billID, paid)
}

// Delete elimina las facturas indicadas y devuelve cuántas se eliminaron.
func (uc *BillUseCase) Delete(billIDs []int) (int, error) {
	return uc.ledger.DeleteBills(billIDs)
}

// Get devuelve una factura con su estado derivado.
func (uc *BillUseCase) Get(billID int) (*dto.BillResponse, error) {
	b, err := uc.ledger.FindBillByID(billID)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(b), nil
}

// List devuelve las facturas que pasan el filtro de estado, el rango de
// fechas de emisión y la búsqueda de texto libre, en el orden del almacén.
func (uc *BillUseCase) List(in dto.BillFilterRequest) []dto.BillResponse {
	today := uc.now()
	bills := uc.load(in.UserID)

	out := []dto.BillResponse{}
	for i := range bills {
		b := &bills[i]
		if !billing.MatchesFilter(b, in.Status, in.From, in.To, today) {
			continue
		}
		if !billing.MatchesSearch(b, in.Viewer, in.Query, today) {
			continue
		}
		out = append(out, *uc.toResponse(b))
	}
	return out
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func (uc *BillUseCase) load(userID int) []entity.Bill {
	if userID != 0 {
		return uc.ledger.LoadBillsForUser(userID)
	}
	return uc.ledger.LoadBills()
}

func (uc *BillUseCase) toResponse(b *entity.Bill) *dto.BillResponse {
	due := "-"
	if b.DueDate != nil {
		due = b.DueDate.Format(dateLayout)
	}
	return &dto.BillResponse{
		ID:           b.ID,
		Value:        b.Value,
		CustomerID:   b.CustomerID,
		CompanyID:    b.CompanyID,
		CustomerName: b.CustomerName,
		CompanyName:  b.CompanyName,
		Date:         b.Date.Format(dateLayout),
		DueDate:      due,
		Paid:         b.Paid,
		Status:       string(billing.BillStatus(b, uc.now())),
	}
}
