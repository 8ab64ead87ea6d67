package domain

import (
	"context"
	"errors"
	"time"

	"github.com/quisqueyalabs/contalibro/pkg/db/pagination"
)

type SaveInvoiceRequest struct {
	ID              string // empty on add
	CompanyID       string
	Kind            string
	Date            time.Time
	Number          string
	CounterpartRNC  string
	CounterpartName string
	Currency        string
	ExchangeRate    float64
	TaxAmount       float64
	TotalAmount     float64
	AttachmentPath  string
}

// SaveInvoiceResponse reports the saved invoice plus a warning when the
// best-effort third-party upsert failed. The invoice write never succeeds
// silently while the directory diverges.
type SaveInvoiceResponse struct {
	Invoice Invoice `json:"invoice"`
	Warning string  `json:"warning,omitempty"`
}

// PeriodFilter narrows queries to a month/year or to an exact date. The
// exact date takes priority when both are set.
type PeriodFilter struct {
	Month        int
	Year         int
	SpecificDate *time.Time
}

func (f PeriodFilter) Empty() bool {
	return f.SpecificDate == nil && f.Month == 0 && f.Year == 0
}

type ListInvoiceRequest struct {
	CompanyID string
	Filter    PeriodFilter
	PageToken string
	PageSize  int
}

type ListInvoiceResponse struct {
	pagination.PageInfo
	Invoices []Invoice `json:"invoices"`
}

// DashboardSummary aggregates a company's invoices for a period. Amounts
// are in home currency.
type DashboardSummary struct {
	TotalIncome  float64 `json:"total_income"`
	TaxIncome    float64 `json:"tax_income"`
	TotalExpense float64 `json:"total_expense"`
	TaxExpense   float64 `json:"tax_expense"`
	NetAmount    float64 `json:"net_amount"`
	NetTax       float64 `json:"net_tax"`
}

type DashboardData struct {
	Summary      DashboardSummary `json:"summary"`
	Transactions []Invoice        `json:"all_transactions"`
}

type DashboardRequest struct {
	CompanyID string
	Filter    PeriodFilter
}

type Service interface {
	Add(ctx context.Context, req SaveInvoiceRequest) (SaveInvoiceResponse, error)
	Update(ctx context.Context, req SaveInvoiceRequest) (SaveInvoiceResponse, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Invoice, error)
	List(ctx context.Context, req ListInvoiceRequest) (ListInvoiceResponse, error)
	Dashboard(ctx context.Context, req DashboardRequest) (DashboardData, error)
	// SetAttachment records the local path and, on the cloud backend, the
	// object-storage key of an invoice's attachment.
	SetAttachment(ctx context.Context, id, path, key string) error
}

var (
	ErrInvalidCompany      = errors.New("invalid_company")
	ErrInvalidKind         = errors.New("invalid_kind")
	ErrInvalidNumber       = errors.New("invalid_number")
	ErrInvalidRNC          = errors.New("invalid_rnc")
	ErrInvalidDate         = errors.New("invalid_date")
	ErrInvalidExchangeRate = errors.New("invalid_exchange_rate")
	ErrInvalidID           = errors.New("invalid_id")
	ErrDuplicateInvoice    = errors.New("duplicate_invoice")
	ErrNotFound            = errors.New("not_found")
)
