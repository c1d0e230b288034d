package usecase

import (
	"time"

	"github.com/tu-usuario/billing-ledger/internal/application/dto"
	"github.com/tu-usuario/billing-ledger/internal/domain/billing"
	"github.com/tu-usuario/billing-ledger/internal/domain/entity"
	"github.com/tu-usuario/billing-ledger/internal/domain/repository"
)

// StatementPDFGenerator es el puerto hacia la generación del estado de
// cuenta en PDF (implementado en infrastructure/pdf).
type StatementPDFGenerator interface {
	GenerateStatementPDF(user *entity.User, bills []entity.Bill, summary billing.Summary, today time.Time) ([]byte, error)
}

// ReportUseCase produce los agregados de los paneles (totales, promedio,
// contadores por estado, tendencia mensual) y el estado de cuenta en PDF de
// un usuario.
type ReportUseCase struct {
	ledger repository.Ledger
	pdf    StatementPDFGenerator
	now    func() time.Time
}

// NewReportUseCase construye el caso de uso. pdf puede ser nil si no se
// necesita exportación.
func NewReportUseCase(ledger repository.Ledger, pdf StatementPDFGenerator, loc *time.Location) *ReportUseCase {
	return &ReportUseCase{
		ledger: ledger,
		pdf:    pdf,
		now:    func() time.Time { return time.Now().In(loc) },
	}
}

// Summary agrega el conjunto de facturas que pasa el filtro dado.
func (uc *ReportUseCase) Summary(in dto.BillFilterRequest) dto.SummaryResponse {
	today := uc.now()
	filtered := uc.filtered(in, today)

	s := billing.Summarize(filtered, today)
	resp := dto.SummaryResponse{
		Count:        s.Count,
		TotalRevenue: s.TotalRevenue,
		AverageBill:  s.AverageBill,
		Paid:         s.Paid,
		Unpaid:       s.Unpaid,
		Overdue:      s.Overdue,
	}
	for _, m := range billing.RevenueByMonth(filtered) {
		resp.ByMonth = append(resp.ByMonth, dto.MonthRevenue{Month: m.Month, Revenue: m.Revenue})
	}
	return resp
}

// Statement genera el estado de cuenta en PDF con todas las facturas del
// usuario y su resumen.
func (uc *ReportUseCase) Statement(userID int) ([]byte, error) {
	user, err := uc.ledger.FindUserByID(userID)
	if err != nil {
		return nil, err
	}
	today := uc.now()
	bills := uc.ledger.LoadBillsForUser(userID)
	return uc.pdf.GenerateStatementPDF(user, bills, billing.Summarize(bills, today), today)
}

func (uc *ReportUseCase) filtered(in dto.BillFilterRequest, today time.Time) []entity.Bill {
	var bills []entity.Bill
	if in.UserID != 0 {
		bills = uc.ledger.LoadBillsForUser(in.UserID)
	} else {
		bills = uc.ledger.LoadBills()
	}

	out := []entity.Bill{}
	for i := range bills {
		b := &bills[i]
		if billing.MatchesFilter(b, in.Status, in.From, in.To, today) &&
			billing.MatchesSearch(b, in.Viewer, in.Query, today) {
			out = append(out, *b)
		}
	}
	return out
}
