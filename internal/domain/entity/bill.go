package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill representa una factura emitida por una Company a un Customer.
//
// CustomerName y CompanyName son copias desnormalizadas del nombre de los
// usuarios referenciados en el momento de crear (o renombrar) la factura;
// no se consultan en vivo. CustomerID y CompanyID referencian User.ID por
// convención, sin clave foránea.
type Bill struct {
	ID           int
	Value        decimal.Decimal
	CustomerID   int
	CompanyID    int
	CustomerName string
	CompanyName  string
	Date         time.Time
	// DueDate es opcional en memoria pero obligatoria para persistir:
	// una factura sin vencimiento nunca se escribe ni se reconstruye.
	DueDate *time.Time
	Paid    bool
}

// References reporta si la factura está asociada al usuario dado,
// sea como emisor o como receptor. Es el criterio del borrado en cascada.
func (b *Bill) References(userID int) bool {
	return b.CompanyID == userID || b.CustomerID == userID
}

// Persistable reporta si la factura cumple el invariante mínimo de
// persistencia: fecha de emisión y vencimiento presentes.
func (b *Bill) Persistable() bool {
	return !b.Date.IsZero() && b.DueDate != nil
}
