// report imprime el listado filtrado de facturas y su resumen, y
// opcionalmente exporta el estado de cuenta de un usuario a PDF.
//
// Uso:
//
//	go run ./cmd/report [-user N] [-status "Paid|Unpaid|Overdue|All Bills"]
//	                    [-from yyyy-mm-dd -to yyyy-mm-dd] [-q texto]
//	                    [-pdf estado.pdf]
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tu-usuario/billing-ledger/internal/application/dto"
	"github.com/tu-usuario/billing-ledger/internal/application/usecase"
	"github.com/tu-usuario/billing-ledger/internal/domain/billing"
	"github.com/tu-usuario/billing-ledger/internal/domain/entity"
	"github.com/tu-usuario/billing-ledger/internal/infrastructure/pdf"
	"github.com/tu-usuario/billing-ledger/internal/infrastructure/textfile"
	"github.com/tu-usuario/billing-ledger/pkg/config"
	"github.com/tu-usuario/billing-ledger/pkg/logger"
)

func main() {
	userID := flag.Int("user", 0, "restringir a las facturas de este usuario")
	status := flag.String("status", string(billing.FilterAll), "filtro de estado")
	from := flag.String("from", "", "inicio del rango de emisión (yyyy-mm-dd)")
	to := flag.String("to", "", "fin del rango de emisión (yyyy-mm-dd)")
	query := flag.String("q", "", "búsqueda de texto libre")
	pdfOut := flag.String("pdf", "", "ruta de salida del estado de cuenta en PDF (requiere -user)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	loc := cfg.Ledger.Location()
	store := textfile.NewStore(cfg.Ledger, log)
	billsUC := usecase.NewBillUseCase(store, loc)
	reportUC := usecase.NewReportUseCase(store, pdf.NewMarotoStatementGenerator(), loc)

	filter := dto.BillFilterRequest{
		UserID: *userID,
		Viewer: viewerFor(store, *userID),
		Status: billing.StatusFilter(*status),
		Query:  *query,
	}
	filter.From = parseDay(*from, loc)
	filter.To = parseDay(*to, loc)

	rows := billsUC.List(filter)
	fmt.Printf("%-5s %-20s %-20s %-12s %-12s %12s  %s\n",
		"ID", "Empresa", "Cliente", "Emisión", "Vence", "Valor", "Estado")
	for _, b := range rows {
		fmt.Printf("%-5d %-20s %-20s %-12s %-12s %12s  %s\n",
			b.ID, b.CompanyName, b.CustomerName, b.Date, b.DueDate, b.Value.StringFixed(2), b.Status)
	}

	s := reportUC.Summary(filter)
	fmt.Printf("\nFacturas: %d  Total: %s  Promedio: %s  Pagadas: %d  Impagas: %d  Vencidas: %d\n",
		s.Count, s.TotalRevenue.StringFixed(2), s.AverageBill.StringFixed(2),
		s.Paid, s.Unpaid, s.Overdue)
	for _, m := range s.ByMonth {
		fmt.Printf("  %s  %s\n", m.Month, m.Revenue.StringFixed(2))
	}

	if *pdfOut != "" {
		if *userID == 0 {
			fmt.Fprintln(os.Stderr, "-pdf requiere -user")
			os.Exit(1)
		}
		doc, err := reportUC.Statement(*userID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "generar estado de cuenta: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*pdfOut, doc, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "escribir %s: %v\n", *pdfOut, err)
			os.Exit(1)
		}
		log.Info().Str("file", *pdfOut).Msg("estado de cuenta exportado")
	}
}

// viewerFor fija la perspectiva de la búsqueda: la del usuario filtrado si
// existe, o la vista completa del administrador.
func viewerFor(store *textfile.Store, userID int) entity.Role {
	if userID == 0 {
		return entity.RoleAdmin
	}
	u, err := store.FindUserByID(userID)
	if err != nil {
		return entity.RoleAdmin
	}
	return u.Role
}

func parseDay(s string, loc *time.Location) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fecha inválida %q (se espera yyyy-mm-dd)\n", s)
		os.Exit(1)
	}
	return t
}
