// Package pdf renders the bookkeeping reports with maroto. The renderers
// only draw; every figure comes in precomputed.
package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	invoicedomain "github.com/quisqueyalabs/contalibro/internal/invoice/domain"
)

// MonthlyData is everything the monthly summary report draws.
type MonthlyData struct {
	CompanyName string
	CompanyRNC  string
	PeriodLabel string
	Summary     invoicedomain.DashboardSummary
	Invoices    []invoicedomain.Invoice
}

// Monthly renders the monthly summary: six summary cards followed by one
// table row per invoice.
func Monthly(data MonthlyData) ([]byte, error) {
	m := newMaroto()

	header(m, "Resumen mensual", data.CompanyName, data.CompanyRNC, data.PeriodLabel)

	m.AddRow(10,
		summaryCell(4, "Ingresos", data.Summary.TotalIncome),
		summaryCell(4, "Gastos", data.Summary.TotalExpense),
		summaryCell(4, "Balance", data.Summary.NetAmount),
	)
	m.AddRow(10,
		summaryCell(4, "ITBIS cobrado", data.Summary.TaxIncome),
		summaryCell(4, "ITBIS pagado", data.Summary.TaxExpense),
		summaryCell(4, "ITBIS neto", data.Summary.NetTax),
	)

	m.AddRow(6, line.NewCol(12))

	m.AddRow(8,
		text.NewCol(2, "Fecha", headerStyle()),
		text.NewCol(2, "NCF", headerStyle()),
		text.NewCol(3, "Tercero", headerStyle()),
		text.NewCol(1, "Tipo", headerStyle()),
		text.NewCol(2, "ITBIS", headerRightStyle()),
		text.NewCol(2, "Total RD$", headerRightStyle()),
	)

	for _, invoice := range data.Invoices {
		kind := "Gasto"
		if invoice.Kind == invoicedomain.KindIssued {
			kind = "Emitida"
		}
		m.AddRow(6,
			text.NewCol(2, invoice.Date.Format("02/01/2006"), cellStyle()),
			text.NewCol(2, invoice.Number, cellStyle()),
			text.NewCol(3, invoice.CounterpartName, cellStyle()),
			text.NewCol(1, kind, cellStyle()),
			text.NewCol(2, money(invoice.TaxAmount), cellRightStyle()),
			text.NewCol(2, money(invoice.TotalDOP), cellRightStyle()),
		)
	}

	return render(m)
}

func newMaroto() core.Maroto {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
		}).
		Build()
	return maroto.New(cfg)
}

func header(m core.Maroto, title, companyName, companyRNC, periodLabel string) {
	m.AddRow(12,
		text.NewCol(12, title, props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	m.AddRow(14,
		col.New(8).Add(
			text.New(companyName, props.Text{Style: fontstyle.Bold}),
			text.New("RNC: "+companyRNC, props.Text{Top: 5, Size: 9}),
		),
		col.New(4).Add(
			text.New(periodLabel, props.Text{Align: align.Right, Size: 10}),
		),
	)
}

func summaryCell(size int, label string, amount float64) core.Col {
	return col.New(size).Add(
		text.New(label, props.Text{Size: 8}),
		text.New(money(amount), props.Text{Top: 4, Size: 11, Style: fontstyle.Bold}),
	)
}

func headerStyle() props.Text {
	return props.Text{Style: fontstyle.Bold, Size: 9}
}

func headerRightStyle() props.Text {
	return props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}
}

func cellStyle() props.Text {
	return props.Text{Size: 8}
}

func cellRightStyle() props.Text {
	return props.Text{Size: 8, Align: align.Right}
}

func money(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

func render(m core.Maroto) ([]byte, error) {
	document, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return document.GetBytes(), nil
}
