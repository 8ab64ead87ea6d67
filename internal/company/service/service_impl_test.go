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
	"github.com/quisqueyalabs/contalibro/internal/company/domain"
	"github.com/quisqueyalabs/contalibro/internal/company/repository"
	invoicedomain "github.com/quisqueyalabs/contalibro/internal/invoice/domain"
	taxcalcdomain "github.com/quisqueyalabs/contalibro/internal/taxcalc/domain"
)

func newService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Company{},
		&invoicedomain.Invoice{},
		&taxcalcdomain.TaxCalculation{},
		&taxcalcdomain.TaxCalculationDetail{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
		Repo:  repository.New(db),
	})
	return svc, db, node
}

func TestCreateAndGetRoundtrip(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateCompanyRequest{
		Name:         "Colmado El Buen Precio",
		RNC:          "131-24678-9",
		Address:      "Av. Duarte 45, Santiago",
		AdvanceITBIS: 0.5,
	})
	require.NoError(t, err)
	assert.Equal(t, "131246789", created.RNC)

	got, err := svc.GetByID(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, 0.5, got.AdvanceITBIS)
}

func TestCreateValidation(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateCompanyRequest{Name: " ", RNC: "131246789"})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(ctx, domain.CreateCompanyRequest{Name: "X", RNC: "1234"})
	assert.ErrorIs(t, err, domain.ErrInvalidRNC)
}

func TestCreateRejectsDuplicateRNC(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateCompanyRequest{Name: "Primera", RNC: "131246789"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateCompanyRequest{Name: "Segunda", RNC: "131-24678-9"})
	assert.ErrorIs(t, err, domain.ErrDuplicateRNC)
}

func TestUpdateCompany(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateCompanyRequest{Name: "Antes", RNC: "131246789"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, domain.UpdateCompanyRequest{
		ID:   created.ID.String(),
		Name: "Después",
		RNC:  "131246789",
	})
	require.NoError(t, err)
	assert.Equal(t, "Después", updated.Name)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
}

func TestDeleteCascades(t *testing.T) {
	svc, db, node := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateCompanyRequest{Name: "Para Borrar", RNC: "131246789"})
	require.NoError(t, err)

	invoice := invoicedomain.Invoice{
		ID:             node.Generate(),
		CompanyID:      created.ID,
		Kind:           invoicedomain.KindIssued,
		Date:           time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Number:         "B0100000001",
		CounterpartRNC: "101000001",
		Currency:       "DOP",
		ExchangeRate:   1,
	}
	require.NoError(t, db.Create(&invoice).Error)

	calc := taxcalcdomain.TaxCalculation{
		ID:          node.Generate(),
		CompanyID:   created.ID,
		Name:        "Marzo",
		PeriodStart: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&calc).Error)
	require.NoError(t, db.Create(&taxcalcdomain.TaxCalculationDetail{
		ID:            "d-1",
		CalculationID: calc.ID,
		InvoiceID:     invoice.ID,
		Selected:      true,
	}).Error)

	require.NoError(t, svc.Delete(ctx, created.ID.String()))

	for _, model := range []any{
		&invoicedomain.Invoice{},
		&taxcalcdomain.TaxCalculation{},
		&taxcalcdomain.TaxCalculationDetail{},
		&domain.Company{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc, _, node := newService(t)

	_, err := svc.GetByID(context.Background(), node.Generate().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
