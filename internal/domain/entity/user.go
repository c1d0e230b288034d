package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role discrimina la variante de usuario. El valor coincide con el
// discriminador que encabeza cada registro persistido.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleCompany  Role = "Company"
	RoleCustomer Role = "Customer"
)

// Valid reporta si el rol es una de las tres variantes conocidas.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCompany, RoleCustomer:
		return true
	}
	return false
}

// User representa un usuario del sistema en cualquiera de sus variantes
// (unión etiquetada: Role + campos específicos de la variante).
//
// El nombre es único entre todos los usuarios sin distinguir mayúsculas;
// esa regla la aplica el caso de uso de creación, no la entidad.
type User struct {
	ID       int
	Role     Role
	Name     string
	Password string // texto plano; el formato del archivo no admite hashes
	Email    string

	// Industry solo aplica a RoleCompany.
	Industry string
	// StartDate solo aplica a RoleCustomer. Si llega en cero al crear,
	// el caso de uso la inicializa con la fecha actual.
	StartDate time.Time
}

// Login verifica credenciales: nombre y contraseña deben coincidir
// exactamente (sensible a mayúsculas).
func (u *User) Login(name, password string) bool {
	return u.Name == name && u.Password == password
}

// relevantBill decide si una factura cuenta para las métricas del usuario
// según su variante. Un Admin no participa en facturación.
func (u *User) relevantBill(b *Bill) bool {
	switch u.Role {
	case RoleCompany:
		return b.CompanyID == u.ID
	case RoleCustomer:
		return b.CustomerID == u.ID
	}
	return false
}

// TotalBills cuenta las facturas del snapshot asociadas al usuario.
// Consulta de solo lectura sobre la colección recibida.
func (u *User) TotalBills(bills []Bill) int {
	n := 0
	for i := range bills {
		if u.relevantBill(&bills[i]) {
			n++
		}
	}
	return n
}

// TotalRevenue suma el valor de las facturas asociadas al usuario.
// Para una Company suman todas (pagadas o no); para un Customer
// solo las ya pagadas.
func (u *User) TotalRevenue(bills []Bill) decimal.Decimal {
	sum := decimal.Zero
	for i := range bills {
		b := &bills[i]
		if !u.relevantBill(b) {
			continue
		}
		if u.Role == RoleCustomer && !b.Paid {
			continue
		}
		sum = sum.Add(b.Value)
	}
	return sum
}
