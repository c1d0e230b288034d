package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrBillNotFound      = errors.New("factura no encontrada")
	ErrNameAlreadyExists = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidBill       = errors.New("factura inválida: falta fecha de emisión o vencimiento")
	ErrUnauthorized      = errors.New("no autorizado")
)
