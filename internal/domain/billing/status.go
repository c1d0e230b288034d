// Package billing contiene las reglas puras de facturación: estado derivado
// de una factura, filtros por estado y rango de fechas, búsqueda de texto
// libre y agregados para reportes. Ninguna función de este paquete muta la
// colección recibida ni toca el almacén.
package billing

import (
	"time"

	"github.com/tu-usuario/billing-ledger/internal/domain/entity"
)

// Status es la etiqueta derivada de una factura. Nunca se persiste:
// se recalcula a partir de Paid y DueDate frente a una fecha de referencia.
type Status string

const (
	StatusPaid    Status = "Paid"
	StatusUnpaid  Status = "Unpaid"
	StatusOverdue Status = "Overdue"
)

// BillStatus calcula el estado de la factura frente a "hoy".
//
// Pagada gana siempre, sin importar el vencimiento. Una factura impaga está
// vencida si el día calendario de su vencimiento es estrictamente anterior
// al día calendario de hoy, ambos en la zona horaria de today. Sin
// vencimiento solo puede estar impaga.
func BillStatus(b *entity.Bill, today time.Time) Status {
	if b.Paid {
		return StatusPaid
	}
	if b.DueDate == nil {
		return StatusUnpaid
	}
	loc := today.Location()
	if dayOf(*b.DueDate, loc).Before(dayOf(today, loc)) {
		return StatusOverdue
	}
	return StatusUnpaid
}

// dayOf trunca un instante a su día calendario en la zona dada.
func dayOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
