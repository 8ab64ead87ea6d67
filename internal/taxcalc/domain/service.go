package domain

import (
	"context"
	"errors"
	"time"
)

type DetailSelection struct {
	InvoiceID        string
	RetentionApplied bool
}

type SaveCalculationRequest struct {
	ID             string // empty on first save
	CompanyID      string
	Name           string
	PeriodStart    time.Time
	PeriodEnd      time.Time
	RetentionRate  float64
	PayablePercent float64
	// Details is the full selection; saving replaces whatever detail set
	// the calculation had before.
	Details []DetailSelection
}

type Calculation struct {
	TaxCalculation
	Details []TaxCalculationDetail `json:"details"`
}

// StatementLine is one invoice of a calculation with the retention
// arithmetic applied, ready for display or a report.
type StatementLine struct {
	InvoiceID        string  `json:"invoice_id"`
	Number           string  `json:"number"`
	CounterpartRNC   string  `json:"counterpart_rnc"`
	CounterpartName  string  `json:"counterpart_name"`
	Currency         string  `json:"currency"`
	TaxAmount        float64 `json:"tax_amount"`
	TotalAmount      float64 `json:"total_amount"`
	RetentionApplied bool    `json:"retention_applied"`
	RetentionAmount  float64 `json:"retention_amount"`
	AmountPayable    float64 `json:"amount_payable"`
	TaxDue           float64 `json:"tax_due"`
}

type Statement struct {
	Calculation    TaxCalculation  `json:"calculation"`
	Lines          []StatementLine `json:"lines"`
	TotalRetention float64         `json:"total_retention"`
	TotalPayable   float64         `json:"total_payable"`
	TotalTaxDue    float64         `json:"total_tax_due"`
}

type Service interface {
	// Save upserts the header and fully replaces the detail set.
	Save(ctx context.Context, req SaveCalculationRequest) (Calculation, error)
	Get(ctx context.Context, id string) (Calculation, error)
	ListByCompany(ctx context.Context, companyID string) ([]TaxCalculation, error)
	Delete(ctx context.Context, id string) error
	// Statement resolves the saved details against their invoices and
	// applies the retention arithmetic.
	Statement(ctx context.Context, id string) (Statement, error)
}

var (
	ErrInvalidCompany = errors.New("invalid_company")
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidPeriod  = errors.New("invalid_period")
	ErrInvalidRate    = errors.New("invalid_rate")
	ErrInvalidID      = errors.New("invalid_id")
	ErrNotFound       = errors.New("not_found")
)
