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
	companydomain "github.com/quisqueyalabs/contalibro/internal/company/domain"
	companyrepository "github.com/quisqueyalabs/contalibro/internal/company/repository"
	"github.com/quisqueyalabs/contalibro/internal/invoice/domain"
	"github.com/quisqueyalabs/contalibro/internal/invoice/repository"
	thirdpartydomain "github.com/quisqueyalabs/contalibro/internal/thirdparty/domain"
	thirdpartyrepository "github.com/quisqueyalabs/contalibro/internal/thirdparty/repository"
	thirdpartyservice "github.com/quisqueyalabs/contalibro/internal/thirdparty/service"
)

type fixture struct {
	db        *gorm.DB
	svc       domain.Service
	companyID string
	clock     *clock.FakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&companydomain.Company{},
		&domain.Invoice{},
		&thirdpartydomain.ThirdParty{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	log := zap.NewNop()

	companyRepo := companyrepository.New(db)
	company := companydomain.Company{
		ID:   node.Generate(),
		Name: "Colmado El Buen Precio",
		RNC:  "131246789",
	}
	require.NoError(t, companyRepo.Insert(context.Background(), &company))

	thirdParties := thirdpartyservice.New(thirdpartyservice.Params{
		Log:   log,
		Clock: fake,
		Repo:  thirdpartyrepository.New(db),
	})

	svc := New(Params{
		Log:          log,
		GenID:        node,
		Clock:        fake,
		Repo:         repository.New(db),
		CompanyRepo:  companyRepo,
		ThirdParties: thirdParties,
	})

	return &fixture{
		db:        db,
		svc:       svc,
		companyID: company.ID.String(),
		clock:     fake,
	}
}

func (f *fixture) saveRequest(kind, number string) domain.SaveInvoiceRequest {
	return domain.SaveInvoiceRequest{
		CompanyID:       f.companyID,
		Kind:            kind,
		Date:            time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Number:          number,
		CounterpartRNC:  "101000001",
		CounterpartName: "Distribuidora Antillana",
		Currency:        "DOP",
		ExchangeRate:    1,
		TaxAmount:       18,
		TotalAmount:     118,
	}
}

func TestAddComputesHomeCurrencyTotal(t *testing.T) {
	f := newFixture(t)

	req := f.saveRequest("issued", "B0100000001")
	req.Currency = "USD"
	req.ExchangeRate = 59.5
	req.TotalAmount = 100
	req.TaxAmount = 0

	resp, err := f.svc.Add(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "USD", resp.Invoice.Currency)
	assert.InDelta(t, 5950.0, resp.Invoice.TotalDOP, 0.001)
	assert.Empty(t, resp.Warning)
}

func TestAddRejectsDuplicateIdentity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Add(ctx, f.saveRequest("issued", "B0100000001"))
	require.NoError(t, err)

	_, err = f.svc.Add(ctx, f.saveRequest("issued", "B0100000001"))
	assert.ErrorIs(t, err, domain.ErrDuplicateInvoice)

	var count int64
	require.NoError(t, f.db.Model(&domain.Invoice{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAddAllowsSameNumberForDifferentCounterparts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Add(ctx, f.saveRequest("expense", "B0100000007"))
	require.NoError(t, err)

	second := f.saveRequest("expense", "B0100000007")
	second.CounterpartRNC = "131-24680-9"
	second.CounterpartName = "Ferretería Central"
	_, err = f.svc.Add(ctx, second)
	require.NoError(t, err)
}

func TestAddNormalizesRNC(t *testing.T) {
	f := newFixture(t)

	req := f.saveRequest("issued", "B0100000002")
	req.CounterpartRNC = "101-00000-1 "

	resp, err := f.svc.Add(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "101000001", resp.Invoice.CounterpartRNC)
}

func TestAddUpdatesThirdPartyDirectory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Add(ctx, f.saveRequest("issued", "B0100000003"))
	require.NoError(t, err)

	var party thirdpartydomain.ThirdParty
	require.NoError(t, f.db.Where("rnc = ?", "101000001").First(&party).Error)
	assert.Equal(t, "Distribuidora Antillana", party.Name)
}

func TestAddValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		mutate  func(*domain.SaveInvoiceRequest)
		wantErr error
	}{
		{"bad kind", func(r *domain.SaveInvoiceRequest) { r.Kind = "credit" }, domain.ErrInvalidKind},
		{"empty number", func(r *domain.SaveInvoiceRequest) { r.Number = "  " }, domain.ErrInvalidNumber},
		{"short rnc", func(r *domain.SaveInvoiceRequest) { r.CounterpartRNC = "1234" }, domain.ErrInvalidRNC},
		{"zero date", func(r *domain.SaveInvoiceRequest) { r.Date = time.Time{} }, domain.ErrInvalidDate},
		{"zero rate", func(r *domain.SaveInvoiceRequest) { r.ExchangeRate = 0 }, domain.ErrInvalidExchangeRate},
		{"unknown company", func(r *domain.SaveInvoiceRequest) { r.CompanyID = "123456789" }, domain.ErrInvalidCompany},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := f.saveRequest("issued", "B0100000009")
			tc.mutate(&req)
			_, err := f.svc.Add(ctx, req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestUpdatePreservesCreatedAtAndAttachment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Add(ctx, f.saveRequest("issued", "B0100000004"))
	require.NoError(t, err)
	created := resp.Invoice.CreatedAt

	id := resp.Invoice.ID.String()
	require.NoError(t, f.svc.SetAttachment(ctx, id, "adjuntos/x.pdf", ""))

	f.clock.Advance(48 * time.Hour)

	req := f.saveRequest("issued", "B0100000004")
	req.ID = id
	req.TotalAmount = 236
	req.TaxAmount = 36

	updated, err := f.svc.Update(ctx, req)
	require.NoError(t, err)

	assert.True(t, updated.Invoice.CreatedAt.Equal(created))
	assert.Equal(t, "adjuntos/x.pdf", updated.Invoice.AttachmentPath)
	assert.InDelta(t, 236.0, updated.Invoice.TotalDOP, 0.001)
	assert.True(t, updated.Invoice.UpdatedAt.After(created))
}

func TestDashboardSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	income := f.saveRequest("issued", "B0100000005")
	income.TotalAmount = 118
	income.TaxAmount = 18
	_, err := f.svc.Add(ctx, income)
	require.NoError(t, err)

	expense := f.saveRequest("expense", "B0200000001")
	expense.CounterpartRNC = "131246800"
	expense.TotalAmount = 59
	expense.TaxAmount = 9
	_, err = f.svc.Add(ctx, expense)
	require.NoError(t, err)

	data, err := f.svc.Dashboard(ctx, domain.DashboardRequest{
		CompanyID: f.companyID,
		Filter:    domain.PeriodFilter{Month: 3, Year: 2024},
	})
	require.NoError(t, err)

	assert.InDelta(t, 118.0, data.Summary.TotalIncome, 0.001)
	assert.InDelta(t, 18.0, data.Summary.TaxIncome, 0.001)
	assert.InDelta(t, 59.0, data.Summary.TotalExpense, 0.001)
	assert.InDelta(t, 9.0, data.Summary.TaxExpense, 0.001)
	assert.InDelta(t, 59.0, data.Summary.NetAmount, 0.001)
	assert.InDelta(t, 9.0, data.Summary.NetTax, 0.001)
	assert.Len(t, data.Transactions, 2)
}

func TestDashboardFiltersByPeriod(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inPeriod := f.saveRequest("issued", "B0100000006")
	_, err := f.svc.Add(ctx, inPeriod)
	require.NoError(t, err)

	outOfPeriod := f.saveRequest("issued", "B0100000010")
	outOfPeriod.Date = time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
	_, err = f.svc.Add(ctx, outOfPeriod)
	require.NoError(t, err)

	data, err := f.svc.Dashboard(ctx, domain.DashboardRequest{
		CompanyID: f.companyID,
		Filter:    domain.PeriodFilter{Month: 3, Year: 2024},
	})
	require.NoError(t, err)
	assert.Len(t, data.Transactions, 1)
}

func TestListPaginates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		req := f.saveRequest("issued", fmt.Sprintf("B01000001%02d", i))
		_, err := f.svc.Add(ctx, req)
		require.NoError(t, err)
		f.clock.Advance(time.Minute)
	}

	first, err := f.svc.List(ctx, domain.ListInvoiceRequest{
		CompanyID: f.companyID,
		PageSize:  2,
	})
	require.NoError(t, err)
	require.Len(t, first.Invoices, 2)
	require.True(t, first.HasMore)

	second, err := f.svc.List(ctx, domain.ListInvoiceRequest{
		CompanyID: f.companyID,
		PageSize:  2,
		PageToken: first.NextPageToken,
	})
	require.NoError(t, err)
	require.Len(t, second.Invoices, 2)

	assert.NotEqual(t, first.Invoices[0].ID, second.Invoices[0].ID)
}

func TestGetByIDNormalizesLegacyRows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Add(ctx, f.saveRequest("issued", "B0100000011"))
	require.NoError(t, err)

	// Simulate a legacy row written before exchange rates existed.
	require.NoError(t, f.db.Model(&domain.Invoice{}).
		Where("id = ?", resp.Invoice.ID).
		Updates(map[string]any{"exchange_rate": 0, "currency": "", "total_dop": 0}).Error)

	got, err := f.svc.GetByID(ctx, resp.Invoice.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.ExchangeRate)
	assert.Equal(t, "DOP", got.Currency)
	assert.InDelta(t, 118.0, got.TotalDOP, 0.001)
}
