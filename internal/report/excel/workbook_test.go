package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	invoicedomain "github.com/quisqueyalabs/contalibro/internal/invoice/domain"
)

func sampleData() WorkbookData {
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	return WorkbookData{
		CompanyName: "Colmado El Buen Precio",
		CompanyRNC:  "131246789",
		PeriodLabel: "03/2024",
		Summary: invoicedomain.DashboardSummary{
			TotalIncome:  118,
			TaxIncome:    18,
			TotalExpense: 59,
			TaxExpense:   9,
			NetAmount:    59,
			NetTax:       9,
		},
		Invoices: []invoicedomain.Invoice{
			{
				Kind:            invoicedomain.KindIssued,
				Date:            date,
				Number:          "B0100000001",
				CounterpartRNC:  "101000001",
				CounterpartName: "Distribuidora Antillana",
				Currency:        "DOP",
				ExchangeRate:    1,
				TaxAmount:       18,
				TotalAmount:     118,
				TotalDOP:        118,
			},
			{
				Kind:            invoicedomain.KindExpense,
				Date:            date,
				Number:          "B0200000001",
				CounterpartRNC:  "131246800",
				CounterpartName: "Ferretería Central",
				Currency:        "DOP",
				ExchangeRate:    1,
				TaxAmount:       9,
				TotalAmount:     59,
				TotalDOP:        59,
			},
		},
	}
}

func TestWorkbookSheets(t *testing.T) {
	out, err := Workbook(sampleData())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{SheetSummary, SheetIncome, SheetExpense}, f.GetSheetList())
}

func TestWorkbookSummaryValues(t *testing.T) {
	out, err := Workbook(sampleData())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	company, err := f.GetCellValue(SheetSummary, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Colmado El Buen Precio", company)

	income, err := f.GetCellValue(SheetSummary, "B5")
	require.NoError(t, err)
	assert.Equal(t, "118", income)

	netTax, err := f.GetCellValue(SheetSummary, "B10")
	require.NoError(t, err)
	assert.Equal(t, "9", netTax)
}

func TestWorkbookSplitsInvoicesByKind(t *testing.T) {
	out, err := Workbook(sampleData())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	issued, err := f.GetRows(SheetIncome)
	require.NoError(t, err)
	require.Len(t, issued, 2) // header plus one invoice
	assert.Equal(t, "B0100000001", issued[1][1])

	expenses, err := f.GetRows(SheetExpense)
	require.NoError(t, err)
	require.Len(t, expenses, 2)
	assert.Equal(t, "B0200000001", expenses[1][1])
}

func TestWorkbookEmptyPeriod(t *testing.T) {
	data := sampleData()
	data.Invoices = nil

	out, err := Workbook(data)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetIncome)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
