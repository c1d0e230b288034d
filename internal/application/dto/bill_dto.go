package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/billing-ledger/internal/domain/billing"
	"github.com/tu-usuario/billing-ledger/internal/domain/entity"
)

// CreateBillRequest datos para emitir una factura. Date en cero se toma como
// la fecha actual; DueDate es obligatoria y no puede ser anterior a Date.
type CreateBillRequest struct {
	Value      decimal.Decimal
	CustomerID int
	CompanyID  int
	Date       time.Time
	DueDate    time.Time
}

// BillResponse factura en respuestas, con su estado derivado.
type BillResponse struct {
	ID           int             `json:"id"`
	Value        decimal.Decimal `json:"value"`
	CustomerID   int             `json:"customer_id"`
	CompanyID    int             `json:"company_id"`
	CustomerName string          `json:"customer_name"`
	CompanyName  string          `json:"company_name"`
	Date         string          `json:"date"`     // yyyy-mm-dd
	DueDate      string          `json:"due_date"` // yyyy-mm-dd, "-" si falta
	Paid         bool            `json:"paid"`
	Status       string          `json:"status"` // Paid | Unpaid | Overdue
}

// BillFilterRequest parámetros de listado: filtro por estado, rango de
// fechas de emisión (ambos límites o ninguno) y búsqueda de texto libre.
// UserID distinto de cero restringe a las facturas de ese usuario; Viewer
// fija la perspectiva de la búsqueda (qué contraparte se consulta).
type BillFilterRequest struct {
	UserID int
	Viewer entity.Role
	Status billing.StatusFilter
	From   time.Time
	To     time.Time
	Query  string
}

// SummaryResponse agregados de un conjunto filtrado de facturas.
type SummaryResponse struct {
	Count        int             `json:"count"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	AverageBill  decimal.Decimal `json:"average_bill"`
	Paid         int             `json:"paid"`
	Unpaid       int             `json:"unpaid"`
	Overdue      int             `json:"overdue"`
	ByMonth      []MonthRevenue  `json:"by_month,omitempty"`
}

// MonthRevenue facturación de un mes calendario para la serie de tendencia.
type MonthRevenue struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}
