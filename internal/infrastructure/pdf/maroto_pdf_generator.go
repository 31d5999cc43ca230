// Package pdf genera el estado de cuenta del comprador en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Proyecto + Unidad    │  ESTADO DE CUENTA + Folio    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre / Email / Fecha de venta / Estatus         │
//	│  RESUMEN: Precio | Pagado | Saldo | Vencido                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Concepto | Vencimiento | Pago | Monto | Estatus  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/leox-api/internal/application/dto"
	"github.com/jhoicas/leox-api/internal/application/portal"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 24, Green: 54, Blue: 84}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorOverdue = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var printer = message.NewPrinter(language.MustParse("es-MX"))

// ── Generator ─────────────────────────────────────────────────────────────────

var _ portal.StatementPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa portal.StatementPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	Issuer string // nombre del desarrollador que aparece como autor
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator(issuer string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{Issuer: issuer}
}

// GenerateStatementPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateStatementPDF(_ context.Context, st *portal.Statement) ([]byte, error) {
	if st == nil || st.Panel == nil {
		return nil, fmt.Errorf("pdf: estado de cuenta vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de cuenta", true).
		WithAuthor(g.Issuer, true).
		Build()

	m := maroto.New(cfg)
	p := st.Panel

	m.AddRows(headerRow(st))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(p))
	m.AddRows(summaryRow(p))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(p.Payments)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(st *portal.Statement) core.Row {
	p := st.Panel
	return row.New(18).Add(
		col.New(7).Add(
			text.New(p.ProjectName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Unidad "+p.UnitNumber, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("ESTADO DE CUENTA", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Folio: "+st.Folio, props.Text{Size: 7, Align: align.Right, Top: 7}),
			text.New("Emitido: "+st.IssuedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

func clientRow(p *dto.ClientPanelDTO) core.Row {
	email := "-"
	if p.Email != nil && *p.Email != "" {
		email = *p.Email
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(p.ClientName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
			text.New(fmt.Sprintf("Email: %s   |   Fecha de venta: %s   |   Contrato: %s",
				email, p.SaleDate, p.ContractState,
			), props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func summaryRow(p *dto.ClientPanelDTO) core.Row {
	cell := func(label, value string, c *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5, Align: align.Center, Color: c}),
		)
	}
	return row.New(14).Add(
		cell("Precio de venta", Money(p.SalePrice), colorPrimary),
		cell("Total pagado", Money(p.TotalPaid), colorPrimary),
		cell("Saldo", Money(p.Balance), colorPrimary),
		cell("Vencido", Money(p.KPIs.OverdueAmount), colorOverdue),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Concepto", 4, align.Left),
		h("Vencimiento", 2, align.Center),
		h("Fecha de pago", 2, align.Center),
		h("Monto", 2, align.Right),
		h("Estatus", 1, align.Center),
	)
}

func tableRows(payments []dto.PaymentDTO) []core.Row {
	result := make([]core.Row, 0, len(payments))
	for _, p := range payments {
		statusColor := colorGray
		if p.Display == "vencido" {
			statusColor = colorOverdue
		}
		result = append(result, row.New(6).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", p.PaymentNumber), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(p.Concept, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(p.DueLabel, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(p.PaymentLabel, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(Money(p.Amount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(p.Status, props.Text{Size: 7, Align: align.Center, Top: 1, Color: statusColor})),
		))
	}
	return result
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Este estado de cuenta es informativo. Los pagos registrados después de la fecha de emisión "+
				"no se reflejan en este documento.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// Money formatea un monto en pesos con separadores de es-MX, ej: "$1,234,567.50".
func Money(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return printer.Sprintf("$%.2f", f)
}
