// Package domain declares the report surface. Reports never compute
// figures of their own; they render what the invoice and tax-calculation
// services already produced.
package domain

import (
	"context"

	invoicedomain "github.com/quisqueyalabs/contalibro/internal/invoice/domain"
)

type Service interface {
	MonthlySummaryPDF(ctx context.Context, companyID string, filter invoicedomain.PeriodFilter) ([]byte, error)
	MonthlyWorkbook(ctx context.Context, companyID string, filter invoicedomain.PeriodFilter) ([]byte, error)
	RetentionPDF(ctx context.Context, calculationID string) ([]byte, error)
	RetentionMultiCurrencyPDF(ctx context.Context, calculationID string) ([]byte, error)
}
