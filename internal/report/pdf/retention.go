package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	taxcalcdomain "github.com/quisqueyalabs/contalibro/internal/taxcalc/domain"
)

// RetentionData is everything the retention statement draws.
type RetentionData struct {
	CompanyName string
	CompanyRNC  string
	Statement   taxcalcdomain.Statement
}

// Retention renders a saved calculation: one row per selected invoice with
// its retention, payable and tax-due amounts, then the totals.
func Retention(data RetentionData) ([]byte, error) {
	m := newMaroto()

	calc := data.Statement.Calculation
	period := fmt.Sprintf("%s - %s",
		calc.PeriodStart.Format("02/01/2006"),
		calc.PeriodEnd.Format("02/01/2006"),
	)
	header(m, "Estado de retención: "+calc.Name, data.CompanyName, data.CompanyRNC, period)

	m.AddRow(8,
		text.NewCol(12, fmt.Sprintf("Retención ITBIS %.0f%%  /  Porcentaje a pagar %.2f%%",
			calc.RetentionRate*100, calc.PayablePercent*100), cellStyle()),
	)

	retentionTableHeader(m)
	for _, ln := range data.Statement.Lines {
		retentionTableLine(m, ln)
	}

	m.AddRow(4, line.NewCol(12))
	m.AddRow(8,
		text.NewCol(6, "Totales", headerStyle()),
		text.NewCol(2, money(data.Statement.TotalRetention), headerRightStyle()),
		text.NewCol(2, money(data.Statement.TotalPayable), headerRightStyle()),
		text.NewCol(2, money(data.Statement.TotalTaxDue), headerRightStyle()),
	)

	return render(m)
}

// RetentionMultiCurrency renders the same statement grouped by invoice
// currency, with a subtotal block per group.
func RetentionMultiCurrency(data RetentionData) ([]byte, error) {
	m := newMaroto()

	calc := data.Statement.Calculation
	period := fmt.Sprintf("%s - %s",
		calc.PeriodStart.Format("02/01/2006"),
		calc.PeriodEnd.Format("02/01/2006"),
	)
	header(m, "Retención multimoneda: "+calc.Name, data.CompanyName, data.CompanyRNC, period)

	groups := map[string][]taxcalcdomain.StatementLine{}
	var order []string
	for _, ln := range data.Statement.Lines {
		if _, seen := groups[ln.Currency]; !seen {
			order = append(order, ln.Currency)
		}
		groups[ln.Currency] = append(groups[ln.Currency], ln)
	}

	for _, currency := range order {
		m.AddRow(10,
			text.NewCol(12, "Moneda: "+currency, props.Text{Style: fontstyle.Bold, Size: 10, Top: 2}),
		)
		retentionTableHeader(m)

		var retention, payable, due float64
		for _, ln := range groups[currency] {
			retentionTableLine(m, ln)
			retention += ln.RetentionAmount
			payable += ln.AmountPayable
			due += ln.TaxDue
		}

		m.AddRow(4, line.NewCol(12))
		m.AddRow(8,
			text.NewCol(6, "Subtotal "+currency, headerStyle()),
			text.NewCol(2, money(retention), headerRightStyle()),
			text.NewCol(2, money(payable), headerRightStyle()),
			text.NewCol(2, money(due), headerRightStyle()),
		)
	}

	return render(m)
}

func retentionTableHeader(m core.Maroto) {
	m.AddRow(8,
		text.NewCol(2, "NCF", headerStyle()),
		text.NewCol(3, "Tercero", headerStyle()),
		text.NewCol(1, "Ret.", headerStyle()),
		text.NewCol(2, "Retención", headerRightStyle()),
		text.NewCol(2, "A pagar", headerRightStyle()),
		text.NewCol(2, "ITBIS a cargo", headerRightStyle()),
	)
}

func retentionTableLine(m core.Maroto, ln taxcalcdomain.StatementLine) {
	applied := "No"
	if ln.RetentionApplied {
		applied = "Sí"
	}
	m.AddRow(6,
		text.NewCol(2, ln.Number, cellStyle()),
		text.NewCol(3, ln.CounterpartName, cellStyle()),
		text.NewCol(1, applied, cellStyle()),
		text.NewCol(2, money(ln.RetentionAmount), cellRightStyle()),
		text.NewCol(2, money(ln.AmountPayable), cellRightStyle()),
		text.NewCol(2, money(ln.TaxDue), cellRightStyle()),
	)
}
