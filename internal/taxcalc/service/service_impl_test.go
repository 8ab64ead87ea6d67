package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/quisqueyalabs/contalibro/internal/clock"
	invoicedomain "github.com/quisqueyalabs/contalibro/internal/invoice/domain"
	invoicerepository "github.com/quisqueyalabs/contalibro/internal/invoice/repository"
	"github.com/quisqueyalabs/contalibro/internal/taxcalc/domain"
	"github.com/quisqueyalabs/contalibro/internal/taxcalc/repository"
)

type fixture struct {
	db        *gorm.DB
	svc       domain.Service
	node      *snowflake.Node
	companyID snowflake.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&invoicedomain.Invoice{},
		&domain.TaxCalculation{},
		&domain.TaxCalculationDetail{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		Log:         zap.NewNop(),
		GenID:       node,
		Clock:       clock.NewFakeClock(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)),
		Repo:        repository.New(db),
		InvoiceRepo: invoicerepository.New(db),
	})

	return &fixture{db: db, svc: svc, node: node, companyID: node.Generate()}
}

func (f *fixture) insertInvoice(t *testing.T, number string, tax, total float64) invoicedomain.Invoice {
	t.Helper()

	invoice := invoicedomain.Invoice{
		ID:              f.node.Generate(),
		CompanyID:       f.companyID,
		Kind:            invoicedomain.KindExpense,
		Date:            time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Number:          number,
		CounterpartRNC:  "101000001",
		CounterpartName: "Distribuidora Antillana",
		Currency:        "DOP",
		ExchangeRate:    1,
		TaxAmount:       tax,
		TotalAmount:     total,
		TotalDOP:        total,
	}
	require.NoError(t, f.db.Create(&invoice).Error)
	return invoice
}

func (f *fixture) saveRequest(invoices ...invoicedomain.Invoice) domain.SaveCalculationRequest {
	details := make([]domain.DetailSelection, 0, len(invoices))
	for _, invoice := range invoices {
		details = append(details, domain.DetailSelection{
			InvoiceID:        invoice.ID.String(),
			RetentionApplied: true,
		})
	}
	return domain.SaveCalculationRequest{
		CompanyID:   f.companyID.String(),
		Name:        "Marzo 2024",
		PeriodStart: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		Details:     details,
	}
}

func TestSaveAppliesDefaultRate(t *testing.T) {
	f := newFixture(t)

	calc, err := f.svc.Save(context.Background(), f.saveRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRetentionRate, calc.RetentionRate)
	assert.Empty(t, calc.Details)
}

func TestSaveRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := f.saveRequest()
	req.Name = " "
	_, err := f.svc.Save(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	req = f.saveRequest()
	req.PeriodEnd = req.PeriodStart.AddDate(0, 0, -1)
	_, err = f.svc.Save(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)

	req = f.saveRequest()
	req.RetentionRate = 1.5
	_, err = f.svc.Save(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidRate)
}

func TestSaveReplacesDetails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.insertInvoice(t, "B0100000001", 18, 118)
	second := f.insertInvoice(t, "B0100000002", 9, 59)

	calc, err := f.svc.Save(ctx, f.saveRequest(first, second))
	require.NoError(t, err)
	require.Len(t, calc.Details, 2)

	// Saving again with a smaller selection must drop the removed row.
	resave := f.saveRequest(second)
	resave.ID = calc.ID.String()
	updated, err := f.svc.Save(ctx, resave)
	require.NoError(t, err)
	require.Len(t, updated.Details, 1)

	var count int64
	require.NoError(t, f.db.Model(&domain.TaxCalculationDetail{}).
		Where("calculation_id = ?", calc.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestResaveMovesCalculationBetweenCompanies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	calc, err := f.svc.Save(ctx, f.saveRequest())
	require.NoError(t, err)

	otherCompany := f.node.Generate()
	resave := f.saveRequest()
	resave.ID = calc.ID.String()
	resave.CompanyID = otherCompany.String()
	_, err = f.svc.Save(ctx, resave)
	require.NoError(t, err)

	moved, err := f.svc.ListByCompany(ctx, otherCompany.String())
	require.NoError(t, err)
	require.Len(t, moved, 1)
	assert.Equal(t, calc.ID, moved[0].ID)

	remaining, err := f.svc.ListByCompany(ctx, f.companyID.String())
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestSaveEmptySelectionClearsDetails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	invoice := f.insertInvoice(t, "B0100000003", 18, 118)
	calc, err := f.svc.Save(ctx, f.saveRequest(invoice))
	require.NoError(t, err)

	resave := f.saveRequest()
	resave.ID = calc.ID.String()
	_, err = f.svc.Save(ctx, resave)
	require.NoError(t, err)

	var count int64
	require.NoError(t, f.db.Model(&domain.TaxCalculationDetail{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestStatementArithmetic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	withRetention := f.insertInvoice(t, "B0100000004", 18, 118)
	withoutRetention := f.insertInvoice(t, "B0100000005", 9, 59)

	req := f.saveRequest()
	req.PayablePercent = 0.10
	req.Details = []domain.DetailSelection{
		{InvoiceID: withRetention.ID.String(), RetentionApplied: true},
		{InvoiceID: withoutRetention.ID.String(), RetentionApplied: false},
	}

	calc, err := f.svc.Save(ctx, req)
	require.NoError(t, err)

	statement, err := f.svc.Statement(ctx, calc.ID.String())
	require.NoError(t, err)
	require.Len(t, statement.Lines, 2)

	lines := map[string]domain.StatementLine{}
	for _, line := range statement.Lines {
		lines[line.InvoiceID] = line
	}

	// 30% of 18 withheld, 10% of 118 payable.
	withheld := lines[withRetention.ID.String()]
	assert.InDelta(t, 5.4, withheld.RetentionAmount, 0.0001)
	assert.InDelta(t, 11.8, withheld.AmountPayable, 0.0001)
	assert.InDelta(t, 18-5.4+11.8, withheld.TaxDue, 0.0001)

	// No retention on the second invoice.
	plain := lines[withoutRetention.ID.String()]
	assert.Zero(t, plain.RetentionAmount)
	assert.InDelta(t, 9+5.9, plain.TaxDue, 0.0001)

	assert.InDelta(t, 5.4, statement.TotalRetention, 0.0001)
	assert.InDelta(t, 11.8+5.9, statement.TotalPayable, 0.0001)
	assert.InDelta(t, (18-5.4+11.8)+(9+5.9), statement.TotalTaxDue, 0.0001)
}

func TestStatementSkipsMissingInvoices(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	kept := f.insertInvoice(t, "B0100000006", 18, 118)
	deleted := f.insertInvoice(t, "B0100000007", 9, 59)

	calc, err := f.svc.Save(ctx, f.saveRequest(kept, deleted))
	require.NoError(t, err)

	require.NoError(t, f.db.Exec(`DELETE FROM invoices WHERE id = ?`, deleted.ID).Error)

	statement, err := f.svc.Statement(ctx, calc.ID.String())
	require.NoError(t, err)
	assert.Len(t, statement.Lines, 1)
	assert.Equal(t, kept.ID.String(), statement.Lines[0].InvoiceID)
}

func TestDeleteRemovesDetails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	invoice := f.insertInvoice(t, "B0100000008", 18, 118)
	calc, err := f.svc.Save(ctx, f.saveRequest(invoice))
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, calc.ID.String()))

	_, err = f.svc.Get(ctx, calc.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var count int64
	require.NoError(t, f.db.Model(&domain.TaxCalculationDetail{}).Count(&count).Error)
	assert.Zero(t, count)
}
