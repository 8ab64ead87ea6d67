// Package excel writes the monthly workbook: a summary sheet plus one sheet
// each for issued and expense invoices.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	invoicedomain "github.com/quisqueyalabs/contalibro/internal/invoice/domain"
)

const (
	SheetSummary = "Resumen"
	SheetIncome  = "Emitidas"
	SheetExpense = "Gastos"
)

// WorkbookData is everything the workbook writes.
type WorkbookData struct {
	CompanyName string
	CompanyRNC  string
	PeriodLabel string
	Summary     invoicedomain.DashboardSummary
	Invoices    []invoicedomain.Invoice
}

// Workbook builds the three-sheet monthly workbook and returns the xlsx
// bytes.
func Workbook(data WorkbookData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummary(f, data); err != nil {
		return nil, err
	}
	if err := writeInvoices(f, SheetIncome, filterKind(data.Invoices, invoicedomain.KindIssued)); err != nil {
		return nil, err
	}
	if err := writeInvoices(f, SheetExpense, filterKind(data.Invoices, invoicedomain.KindExpense)); err != nil {
		return nil, err
	}

	// excelize starts with "Sheet1"; the summary replaces it.
	f.DeleteSheet("Sheet1")
	index, err := f.GetSheetIndex(SheetSummary)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, data WorkbookData) error {
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return err
	}

	rows := [][]any{
		{data.CompanyName},
		{"RNC", data.CompanyRNC},
		{"Período", data.PeriodLabel},
		{},
		{"Ingresos", data.Summary.TotalIncome},
		{"Gastos", data.Summary.TotalExpense},
		{"Balance", data.Summary.NetAmount},
		{"ITBIS cobrado", data.Summary.TaxIncome},
		{"ITBIS pagado", data.Summary.TaxExpense},
		{"ITBIS neto", data.Summary.NetTax},
	}

	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(SheetSummary, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeInvoices(f *excelize.File, sheet string, invoices []invoicedomain.Invoice) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	head := []any{"Fecha", "NCF", "RNC", "Tercero", "Moneda", "Tasa", "ITBIS", "Total", "Total RD$"}
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return err
	}

	for i, invoice := range invoices {
		row := []any{
			invoice.Date.Format("02/01/2006"),
			invoice.Number,
			invoice.CounterpartRNC,
			invoice.CounterpartName,
			invoice.Currency,
			invoice.ExchangeRate,
			invoice.TaxAmount,
			invoice.TotalAmount,
			invoice.TotalDOP,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func filterKind(invoices []invoicedomain.Invoice, kind invoicedomain.Kind) []invoicedomain.Invoice {
	filtered := make([]invoicedomain.Invoice, 0, len(invoices))
	for _, invoice := range invoices {
		if invoice.Kind == kind {
			filtered = append(filtered, invoice)
		}
	}
	return filtered
}
