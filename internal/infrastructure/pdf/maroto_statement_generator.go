// Package pdf implementa la generación del estado de cuenta de un usuario
// con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del usuario + rol  │  Fecha de emisión       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: ID | Contraparte | Emisión | Vence | Valor | Estado  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: total facturado / promedio / pagadas / vencidas    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tu-usuario/billing-ledger/internal/application/usecase"
	"github.com/tu-usuario/billing-ledger/internal/domain/billing"
	"github.com/tu-usuario/billing-ledger/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ usecase.StatementPDFGenerator = (*MarotoStatementGenerator)(nil)

// MarotoStatementGenerator implementa usecase.StatementPDFGenerator usando
// Maroto v2.
type MarotoStatementGenerator struct{}

// NewMarotoStatementGenerator construye el generador.
func NewMarotoStatementGenerator() *MarotoStatementGenerator { return &MarotoStatementGenerator{} }

// GenerateStatementPDF genera el estado de cuenta y devuelve sus bytes.
func (g *MarotoStatementGenerator) GenerateStatementPDF(
	user *entity.User,
	bills []entity.Bill,
	summary billing.Summary,
	today time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de cuenta", true).
		WithAuthor(user.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(user, today))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range billRows(user, bills, today) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(summary))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre + rol (izq) y fecha de emisión del reporte (der).
func headerRow(user *entity.User, today time.Time) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(user.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(roleLabel(user), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ESTADO DE CUENTA", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido: "+today.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func roleLabel(user *entity.User) string {
	switch user.Role {
	case entity.RoleCompany:
		if user.Industry != "" {
			return "Empresa · " + user.Industry
		}
		return "Empresa"
	case entity.RoleCustomer:
		return "Cliente desde " + user.StartDate.Format(dateLayout)
	}
	return "Administrador"
}

// tableHeaderRow: cabecera de la tabla de facturas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("ID", 1, align.Center),
		h("Contraparte", 4, align.Left),
		h("Emisión", 2, align.Center),
		h("Vence", 2, align.Center),
		h("Valor", 2, align.Right),
		h("Estado", 1, align.Center),
	)
}

// billRows: una fila por factura, con el estado vencido resaltado.
func billRows(user *entity.User, bills []entity.Bill, today time.Time) []core.Row {
	result := make([]core.Row, 0, len(bills))
	for i := range bills {
		b := &bills[i]
		status := billing.BillStatus(b, today)
		statusColor := colorGray
		if status == billing.StatusOverdue {
			statusColor = colorRed
		}
		due := "-"
		if b.DueDate != nil {
			due = b.DueDate.Format(dateLayout)
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", b.ID),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				counterpartName(user, b),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				b.Date.Format(dateLayout),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				due,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				b.Value.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				string(status),
				props.Text{Size: 7, Align: align.Center, Top: 1, Color: statusColor},
			)),
		))
	}
	return result
}

// counterpartName devuelve el nombre de la otra parte de la factura según
// la perspectiva del dueño del estado de cuenta.
func counterpartName(user *entity.User, b *entity.Bill) string {
	switch user.Role {
	case entity.RoleCustomer:
		return b.CompanyName
	case entity.RoleCompany:
		return b.CustomerName
	}
	return b.CompanyName + " → " + b.CustomerName
}

// summaryRow: bloque de agregados alineado a la derecha.
func summaryRow(s billing.Summary) core.Row {
	label := func(t string) core.Component {
		return text.New(t, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(t string) core.Component {
		return text.New(t, props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	return row.New(30).Add(
		col.New(4), // espacio izquierdo
		col.New(4).Add(
			label("Facturas:"),
			label("Total facturado:"),
			label("Promedio:"),
			label("Pagadas / Impagas / Vencidas:"),
		),
		col.New(4).Add(
			value(fmt.Sprintf("%d", s.Count)),
			value(s.TotalRevenue.StringFixed(2)),
			value(s.AverageBill.StringFixed(2)),
			value(fmt.Sprintf("%d / %d / %d", s.Paid, s.Unpaid, s.Overdue)),
		),
	)
}
