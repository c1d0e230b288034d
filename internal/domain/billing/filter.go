package billing

import (
	"strconv"
	"strings"
	"time"

	"github.com/tu-usuario/billing-ledger/internal/domain/entity"
)

// StatusFilter selecciona facturas por estado derivado en las vistas de
// listado. FilterAll acepta cualquier estado.
type StatusFilter string

const (
	FilterAll     StatusFilter = "All Bills"
	FilterPaid    StatusFilter = "Paid"
	FilterUnpaid  StatusFilter = "Unpaid"
	FilterOverdue StatusFilter = "Overdue"
)

// formato de fecha usado en las vistas y en la búsqueda de texto libre.
const dateLayout = "2006-01-02"

// MatchesFilter combina el filtro de estado con el rango de fechas de
// emisión [from, to], ambos inclusive por día calendario. Si cualquiera de
// los dos límites llega en cero el chequeo de rango se omite por completo.
func MatchesFilter(b *entity.Bill, filter StatusFilter, from, to, today time.Time) bool {
	if !statusMatches(b, filter, today) {
		return false
	}
	if from.IsZero() || to.IsZero() {
		return true
	}
	loc := today.Location()
	day := dayOf(b.Date, loc)
	return !day.Before(dayOf(from, loc)) && !day.After(dayOf(to, loc))
}

func statusMatches(b *entity.Bill, filter StatusFilter, today time.Time) bool {
	switch filter {
	case FilterPaid:
		return BillStatus(b, today) == StatusPaid
	case FilterUnpaid:
		return BillStatus(b, today) == StatusUnpaid
	case FilterOverdue:
		return BillStatus(b, today) == StatusOverdue
	}
	// FilterAll o filtro desconocido: no restringe.
	return true
}

// MatchesSearch aplica búsqueda de texto libre sobre la factura, sin
// distinguir mayúsculas. Coinciden el ID, el valor con dos decimales, el
// nombre de la contraparte según la perspectiva del observador, las fechas
// formateadas y la etiqueta del estado derivado; basta con que la consulta
// aparezca como subcadena en cualquiera de esos campos.
//
// Para un Customer la contraparte es la Company emisora y viceversa;
// cualquier otra perspectiva (Admin) busca en ambos nombres.
func MatchesSearch(b *entity.Bill, viewer entity.Role, query string, today time.Time) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}

	fields := []string{
		strconv.Itoa(b.ID),
		b.Value.StringFixed(2),
		b.Date.Format(dateLayout),
		strings.ToLower(string(BillStatus(b, today))),
	}
	if b.DueDate != nil {
		fields = append(fields, b.DueDate.Format(dateLayout))
	}
	switch viewer {
	case entity.RoleCustomer:
		fields = append(fields, strings.ToLower(b.CompanyName))
	case entity.RoleCompany:
		fields = append(fields, strings.ToLower(b.CustomerName))
	default:
		fields = append(fields, strings.ToLower(b.CompanyName), strings.ToLower(b.CustomerName))
	}

	for _, f := range fields {
		if strings.Contains(f, q) {
			return true
		}
	}
	return false
}
