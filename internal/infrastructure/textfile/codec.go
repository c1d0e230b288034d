// Package textfile implementa el puerto repository.Ledger sobre dos archivos
// de texto plano, un registro por línea en UTF-8: usuarios separados por coma
// y facturas separadas por "|" (los nombres pueden contener comas).
package textfile

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/billing-ledger/internal/domain/entity"
)

const (
	userSep = ","
	billSep = "|"

	// aridad exacta por discriminador de usuario
	adminFields    = 5
	companyFields  = 6
	customerFields = 6

	billFields = 9
)

// EncodeUser serializa un usuario a su forma canónica de una línea. Las
// fechas se almacenan como epoch en milisegundos.
//
//	Admin,nombre,password,id,email
//	Company,nombre,password,id,email,industria
//	Customer,nombre,password,id,email,inicioMillis
func EncodeUser(u *entity.User) string {
	base := fmt.Sprintf("%s,%s,%s,%d,%s", u.Role, u.Name, u.Password, u.ID, u.Email)
	switch u.Role {
	case entity.RoleCompany:
		return base + userSep + u.Industry
	case entity.RoleCustomer:
		return base + userSep + strconv.FormatInt(u.StartDate.UnixMilli(), 10)
	}
	return base
}

// DecodeUser reconstruye un usuario desde una línea. Devuelve un error
// descriptivo ante discriminador desconocido, aridad incorrecta o campo
// mal formado; el llamador decide registrar y saltar la línea.
func DecodeUser(line string) (*entity.User, error) {
	parts := strings.Split(line, userSep)
	role := entity.Role(parts[0])
	if !role.Valid() {
		return nil, fmt.Errorf("tipo de usuario desconocido %q", parts[0])
	}

	want := adminFields
	switch role {
	case entity.RoleCompany:
		want = companyFields
	case entity.RoleCustomer:
		want = customerFields
	}
	if len(parts) != want {
		return nil, fmt.Errorf("aridad incorrecta para %s: %d campos, se esperaban %d", role, len(parts), want)
	}

	id, err := strconv.Atoi(parts[3])
	if err != nil {
		return nil, fmt.Errorf("id inválido %q: %w", parts[3], err)
	}

	u := &entity.User{
		ID:       id,
		Role:     role,
		Name:     parts[1],
		Password: parts[2],
		Email:    parts[4],
	}
	switch role {
	case entity.RoleCompany:
		u.Industry = parts[5]
	case entity.RoleCustomer:
		millis, err := strconv.ParseInt(parts[5], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("fecha de inicio inválida %q: %w", parts[5], err)
		}
		u.StartDate = time.UnixMilli(millis)
	}
	return u, nil
}

// EncodeBill serializa una factura. El vencimiento debe estar presente: el
// sitio de escritura lo garantiza antes de llamar (una línea sin vencimiento
// no sería reconstruible).
//
//	billId|valor|customerId|companyId|customerName|companyName|fechaMillis|vencimientoMillis|pagada
func EncodeBill(b *entity.Bill) string {
	due := ""
	if b.DueDate != nil {
		due = strconv.FormatInt(b.DueDate.UnixMilli(), 10)
	}
	return fmt.Sprintf("%d|%s|%d|%d|%s|%s|%d|%s|%t",
		b.ID, b.Value.String(), b.CustomerID, b.CompanyID,
		b.CustomerName, b.CompanyName,
		b.Date.UnixMilli(), due, b.Paid)
}

// DecodeBill reconstruye una factura desde una línea. Exige exactamente
// nueve campos; vencimiento vacío o con timestamp no positivo invalida la
// línea completa.
func DecodeBill(line string) (*entity.Bill, error) {
	parts := strings.Split(line, billSep)
	if len(parts) != billFields {
		return nil, fmt.Errorf("aridad incorrecta: %d campos, se esperaban %d", len(parts), billFields)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	id, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("id inválido %q: %w", parts[0], err)
	}
	value, err := decimal.NewFromString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("valor inválido %q: %w", parts[1], err)
	}
	customerID, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil, fmt.Errorf("customerId inválido %q: %w", parts[2], err)
	}
	companyID, err := strconv.Atoi(parts[3])
	if err != nil {
		return nil, fmt.Errorf("companyId inválido %q: %w", parts[3], err)
	}
	dateMillis, err := strconv.ParseInt(parts[6], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida %q: %w", parts[6], err)
	}
	if parts[7] == "" {
		return nil, fmt.Errorf("vencimiento vacío para la factura %d", id)
	}
	dueMillis, err := strconv.ParseInt(parts[7], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("vencimiento inválido %q: %w", parts[7], err)
	}
	if dueMillis <= 0 {
		return nil, fmt.Errorf("timestamp de vencimiento no positivo %d para la factura %d", dueMillis, id)
	}
	paid, err := strconv.ParseBool(strings.ToLower(parts[8]))
	if err != nil {
		return nil, fmt.Errorf("marca de pago inválida %q: %w", parts[8], err)
	}

	due := time.UnixMilli(dueMillis)
	return &entity.Bill{
		ID:           id,
		Value:        value,
		CustomerID:   customerID,
		CompanyID:    companyID,
		CustomerName: parts[4],
		CompanyName:  parts[5],
		Date:         time.UnixMilli(dateMillis),
		DueDate:      &due,
		Paid:         paid,
	}, nil
}
