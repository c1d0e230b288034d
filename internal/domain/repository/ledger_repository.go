package repository

import "github.com/tu-usuario/billing-ledger/internal/domain/entity"

// Ledger define el puerto de persistencia del libro de facturación (DIP).
//
// Es un puerto único y no uno por entidad porque varias operaciones cruzan
// las dos colecciones: el borrado de un usuario arrastra sus facturas y el
// renombrado se propaga a los nombres desnormalizados. Toda lectura devuelve
// copias defensivas; toda mutación debe pasar por aquí.
type Ledger interface {
	// LoadUsers devuelve todos los usuarios. Archivo ausente equivale a
	// cero registros, nunca a error.
	LoadUsers() []entity.User
	// LoadBills devuelve todas las facturas persistibles.
	LoadBills() []entity.Bill
	// LoadBillsForUser devuelve las facturas asociadas al usuario, sea
	// como emisor o como receptor.
	LoadBillsForUser(userID int) []entity.Bill

	// SaveUsers sobrescribe el archivo de usuarios con la lista dada
	// (escritura snapshot, no append).
	SaveUsers(users []entity.User) error
	// SaveBills sobrescribe el archivo de facturas. Las facturas sin
	// vencimiento se omiten de la escritura sin abortar el resto.
	SaveBills(bills []entity.Bill) error
	// SaveBill agrega una factura al final del archivo sin reescribir el
	// resto. Falla con domain.ErrInvalidBill si faltan fecha o vencimiento.
	SaveBill(bill *entity.Bill) error

	// GenerateBillID devuelve el siguiente ID de factura y avanza el
	// contador. No es seguro entre llamadores concurrentes.
	GenerateBillID() int
	// GenerateUserID devuelve max(ID existente)+1, o 1 sin usuarios.
	GenerateUserID() int

	// DeleteUser elimina de la colección dada al usuario con ese ID y
	// persiste. Si era Company o Customer arrastra también todas sus
	// facturas; un Admin nunca toca facturas.
	DeleteUser(userID int, users []entity.User) error
	// DeleteBills elimina las facturas cuyos IDs estén en la lista y
	// persiste. Devuelve cuántas se eliminaron.
	DeleteBills(billIDs []int) (int, error)

	// UpdateUserAndBills reemplaza el registro del usuario (identidad por
	// ID) y reescribe los nombres desnormalizados de todas las facturas
	// que lo referencian.
	UpdateUserAndBills(updated *entity.User) error
	// UpdateBillStatus fija la marca de pago de la primera factura con
	// ese ID y persiste la colección completa.
	UpdateBillStatus(billID int, paid bool) error

	// FindUserByID busca por ID; domain.ErrUserNotFound si no existe.
	FindUserByID(userID int) (*entity.User, error)
	// FindBillByID busca por ID; domain.ErrBillNotFound si no existe.
	FindBillByID(billID int) (*entity.Bill, error)
}
