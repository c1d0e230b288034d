package billing

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/billing-ledger/internal/domain/entity"
)

// Summary agrega una colección de facturas para los paneles de reporte.
// Los contadores por estado son disjuntos (cada factura cuenta una vez,
// según su estado derivado frente a la fecha de referencia).
type Summary struct {
	Count        int
	TotalRevenue decimal.Decimal
	AverageBill  decimal.Decimal
	Paid         int
	Unpaid       int
	Overdue      int
}

// MonthRevenue es la facturación acumulada de un mes calendario.
type MonthRevenue struct {
	Month   string // formato "Jan 2006"
	Revenue decimal.Decimal
}

// Summarize calcula totales, promedio y contadores por estado.
func Summarize(bills []entity.Bill, today time.Time) Summary {
	s := Summary{
		TotalRevenue: decimal.Zero,
		AverageBill:  decimal.Zero,
	}
	for i := range bills {
		b := &bills[i]
		s.Count++
		s.TotalRevenue = s.TotalRevenue.Add(b.Value)
		switch BillStatus(b, today) {
		case StatusPaid:
			s.Paid++
		case StatusOverdue:
			s.Overdue++
		default:
			s.Unpaid++
		}
	}
	if s.Count > 0 {
		s.AverageBill = s.TotalRevenue.Div(decimal.NewFromInt(int64(s.Count)))
	}
	return s
}

// RevenueByMonth acumula el valor facturado por mes de emisión, en orden
// cronológico. Alimenta la serie de tendencia de los reportes.
func RevenueByMonth(bills []entity.Bill) []MonthRevenue {
	// Clave "2006-01" para que el orden lexicográfico sea el cronológico.
	totals := make(map[string]decimal.Decimal)
	for i := range bills {
		b := &bills[i]
		key := b.Date.Format("2006-01")
		if cur, ok := totals[key]; ok {
			totals[key] = cur.Add(b.Value)
		} else {
			totals[key] = b.Value
		}
	}

	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]MonthRevenue, 0, len(keys))
	for _, k := range keys {
		m, _ := time.Parse("2006-01", k)
		out = append(out, MonthRevenue{Month: m.Format("Jan 2006"), Revenue: totals[k]})
	}
	return out
}
