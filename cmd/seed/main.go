// seed puebla los archivos del libro de facturación con datos de
// demostración: un administrador, dos empresas, dos clientes y un puñado de
// facturas en distintos estados (pagadas, impagas y vencidas).
//
// Uso: go run ./cmd/seed [-reset]
// Respeta LEDGER_USERS_FILE y LEDGER_BILLS_FILE (ver pkg/config).
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/billing-ledger/internal/application/dto"
	"github.com/tu-usuario/billing-ledger/internal/application/usecase"
	"github.com/tu-usuario/billing-ledger/internal/domain/entity"
	"github.com/tu-usuario/billing-ledger/internal/infrastructure/textfile"
	"github.com/tu-usuario/billing-ledger/pkg/config"
	"github.com/tu-usuario/billing-ledger/pkg/logger"
)

func main() {
	reset := flag.Bool("reset", false, "vaciar los archivos antes de sembrar")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if *reset {
		for _, path := range []string{cfg.Ledger.UsersFile, cfg.Ledger.BillsFile} {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				fmt.Fprintf(os.Stderr, "vaciar %s: %v\n", path, err)
				os.Exit(1)
			}
		}
	}

	loc := cfg.Ledger.Location()
	store := textfile.NewStore(cfg.Ledger, log)
	users := usecase.NewUserUseCase(store, loc)
	bills := usecase.NewBillUseCase(store, loc)

	admin := mustUser(users, dto.CreateUserRequest{
		Role: entity.RoleAdmin, Name: "admin", Password: "admin123", Email: "admin@ledger.local",
	})
	acme := mustUser(users, dto.CreateUserRequest{
		Role: entity.RoleCompany, Name: "Acme", Password: "acme123",
		Email: "billing@acme.example", Industry: "Manufactura",
	})
	globex := mustUser(users, dto.CreateUserRequest{
		Role: entity.RoleCompany, Name: "Globex", Password: "globex123",
		Email: "cuentas@globex.example", Industry: "Energía",
	})
	ana := mustUser(users, dto.CreateUserRequest{
		Role: entity.RoleCustomer, Name: "Ana Torres", Password: "ana123",
		Email: "ana@example.com",
	})
	bruno := mustUser(users, dto.CreateUserRequest{
		Role: entity.RoleCustomer, Name: "Bruno Díaz", Password: "bruno123",
		Email: "bruno@example.com",
	})

	now := time.Now().In(loc)
	seedBills := []dto.CreateBillRequest{
		{Value: decimal.NewFromFloat(150.50), CustomerID: ana.ID, CompanyID: acme.ID,
			Date: now.AddDate(0, -2, 0), DueDate: now.AddDate(0, -1, 0)},
		{Value: decimal.NewFromInt(300), CustomerID: ana.ID, CompanyID: globex.ID,
			Date: now.AddDate(0, -1, 0), DueDate: now.AddDate(0, 0, -3)},
		{Value: decimal.NewFromFloat(89.90), CustomerID: bruno.ID, CompanyID: acme.ID,
			Date: now.AddDate(0, 0, -10), DueDate: now.AddDate(0, 0, 20)},
		{Value: decimal.NewFromInt(1200), CustomerID: bruno.ID, CompanyID: globex.ID,
			Date: now, DueDate: now.AddDate(0, 1, 0)},
	}
	created := []*dto.BillResponse{}
	for _, req := range seedBills {
		b, err := bills.Create(req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "crear factura: %v\n", err)
			os.Exit(1)
		}
		created = append(created, b)
	}
	// la primera factura queda pagada para cubrir los tres estados
	if err := bills.MarkPaid(created[0].ID, true); err != nil {
		fmt.Fprintf(os.Stderr, "marcar pagada: %v\n", err)
		os.Exit(1)
	}

	log.Info().
		Int("admin_id", admin.ID).
		Int("users", 5).
		Int("bills", len(created)).
		Msg("datos de demostración sembrados")
}

func mustUser(uc *usecase.UserUseCase, req dto.CreateUserRequest) *dto.UserResponse {
	u, err := uc.Create(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "crear usuario %s: %v\n", req.Name, err)
		os.Exit(1)
	}
	return u
}
