package service

import (
	"context"
	"fmt"

	companydomain "github.com/quisqueyalabs/contalibro/internal/company/domain"
	invoicedomain "github.com/quisqueyalabs/contalibro/internal/invoice/domain"
	"github.com/quisqueyalabs/contalibro/internal/report/domain"
	"github.com/quisqueyalabs/contalibro/internal/report/excel"
	"github.com/quisqueyalabs/contalibro/internal/report/pdf"
	taxcalcdomain "github.com/quisqueyalabs/contalibro/internal/taxcalc/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log       *zap.Logger
	Companies companydomain.Service
	Invoices  invoicedomain.Service
	TaxCalcs  taxcalcdomain.Service
}

type Service struct {
	log       *zap.Logger
	companies companydomain.Service
	invoices  invoicedomain.Service
	taxCalcs  taxcalcdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		log:       p.Log.Named("report.service"),
		companies: p.Companies,
		invoices:  p.Invoices,
		taxCalcs:  p.TaxCalcs,
	}
}

func (s *Service) MonthlySummaryPDF(ctx context.Context, companyID string, filter invoicedomain.PeriodFilter) ([]byte, error) {
	company, data, err := s.monthly(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	return pdf.Monthly(pdf.MonthlyData{
		CompanyName: company.Name,
		CompanyRNC:  company.RNC,
		PeriodLabel: periodLabel(filter),
		Summary:     data.Summary,
		Invoices:    data.Transactions,
	})
}

func (s *Service) MonthlyWorkbook(ctx context.Context, companyID string, filter invoicedomain.PeriodFilter) ([]byte, error) {
	company, data, err := s.monthly(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	return excel.Workbook(excel.WorkbookData{
		CompanyName: company.Name,
		CompanyRNC:  company.RNC,
		PeriodLabel: periodLabel(filter),
		Summary:     data.Summary,
		Invoices:    data.Transactions,
	})
}

func (s *Service) RetentionPDF(ctx context.Context, calculationID string) ([]byte, error) {
	data, err := s.retention(ctx, calculationID)
	if err != nil {
		return nil, err
	}
	return pdf.Retention(data)
}

func (s *Service) RetentionMultiCurrencyPDF(ctx context.Context, calculationID string) ([]byte, error) {
	data, err := s.retention(ctx, calculationID)
	if err != nil {
		return nil, err
	}
	return pdf.RetentionMultiCurrency(data)
}

func (s *Service) monthly(ctx context.Context, companyID string, filter invoicedomain.PeriodFilter) (companydomain.Company, invoicedomain.DashboardData, error) {
	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return companydomain.Company{}, invoicedomain.DashboardData{}, err
	}

	data, err := s.invoices.Dashboard(ctx, invoicedomain.DashboardRequest{
		CompanyID: companyID,
		Filter:    filter,
	})
	if err != nil {
		return companydomain.Company{}, invoicedomain.DashboardData{}, err
	}

	return company, data, nil
}

func (s *Service) retention(ctx context.Context, calculationID string) (pdf.RetentionData, error) {
	statement, err := s.taxCalcs.Statement(ctx, calculationID)
	if err != nil {
		return pdf.RetentionData{}, err
	}

	company, err := s.companies.GetByID(ctx, statement.Calculation.CompanyID.String())
	if err != nil {
		return pdf.RetentionData{}, err
	}

	return pdf.RetentionData{
		CompanyName: company.Name,
		CompanyRNC:  company.RNC,
		Statement:   statement,
	}, nil
}

func periodLabel(filter invoicedomain.PeriodFilter) string {
	switch {
	case filter.SpecificDate != nil:
		return filter.SpecificDate.Format("02/01/2006")
	case filter.Month != 0 && filter.Year != 0:
		return fmt.Sprintf("%02d/%d", filter.Month, filter.Year)
	case filter.Year != 0:
		return fmt.Sprintf("Año %d", filter.Year)
	default:
		return "Todos los períodos"
	}
}
