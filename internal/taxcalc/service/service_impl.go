package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/quisqueyalabs/contalibro/internal/clock"
	invoicedomain "github.com/quisqueyalabs/contalibro/internal/invoice/domain"
	"github.com/quisqueyalabs/contalibro/internal/taxcalc/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Repo        domain.Repository
	InvoiceRepo invoicedomain.Repository
}

type Service struct {
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	repo        domain.Repository
	invoiceRepo invoicedomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		log:         p.Log.Named("taxcalc.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repo,
		invoiceRepo: p.InvoiceRepo,
	}
}

func (s *Service) Save(ctx context.Context, req domain.SaveCalculationRequest) (domain.Calculation, error) {
	companyID, err := snowflake.ParseString(strings.TrimSpace(req.CompanyID))
	if err != nil || companyID == 0 {
		return domain.Calculation{}, domain.ErrInvalidCompany
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Calculation{}, domain.ErrInvalidName
	}

	if req.PeriodStart.IsZero() || req.PeriodEnd.IsZero() || req.PeriodEnd.Before(req.PeriodStart) {
		return domain.Calculation{}, domain.ErrInvalidPeriod
	}

	rate := req.RetentionRate
	if rate == 0 {
		rate = domain.DefaultRetentionRate
	}
	if rate < 0 || rate > 1 || req.PayablePercent < 0 || req.PayablePercent > 1 {
		return domain.Calculation{}, domain.ErrInvalidRate
	}

	calc := domain.TaxCalculation{
		CompanyID:      companyID,
		Name:           name,
		PeriodStart:    req.PeriodStart.UTC(),
		PeriodEnd:      req.PeriodEnd.UTC(),
		RetentionRate:  rate,
		PayablePercent: req.PayablePercent,
		CreatedAt:      s.clock.Now(),
	}

	if strings.TrimSpace(req.ID) != "" {
		id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
		if err != nil || id == 0 {
			return domain.Calculation{}, domain.ErrInvalidID
		}
		existing, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return domain.Calculation{}, err
		}
		if existing == nil {
			return domain.Calculation{}, domain.ErrNotFound
		}
		calc.ID = id
		calc.CreatedAt = existing.CreatedAt
	} else {
		calc.ID = s.genID.Generate()
	}

	details := make([]domain.TaxCalculationDetail, 0, len(req.Details))
	for _, selection := range req.Details {
		invoiceID, err := snowflake.ParseString(strings.TrimSpace(selection.InvoiceID))
		if err != nil || invoiceID == 0 {
			return domain.Calculation{}, domain.ErrInvalidID
		}
		details = append(details, domain.TaxCalculationDetail{
			ID:               uuid.NewString(),
			CalculationID:    calc.ID,
			InvoiceID:        invoiceID,
			Selected:         true,
			RetentionApplied: selection.RetentionApplied,
		})
	}

	if err := s.repo.Save(ctx, &calc, details); err != nil {
		return domain.Calculation{}, err
	}

	return domain.Calculation{TaxCalculation: calc, Details: details}, nil
}

func (s *Service) Get(ctx context.Context, rawID string) (domain.Calculation, error) {
	calc, err := s.findByID(ctx, rawID)
	if err != nil {
		return domain.Calculation{}, err
	}

	details, err := s.repo.ListDetails(ctx, calc.ID)
	if err != nil {
		return domain.Calculation{}, err
	}

	return domain.Calculation{TaxCalculation: *calc, Details: details}, nil
}

func (s *Service) ListByCompany(ctx context.Context, rawCompanyID string) ([]domain.TaxCalculation, error) {
	companyID, err := snowflake.ParseString(strings.TrimSpace(rawCompanyID))
	if err != nil || companyID == 0 {
		return nil, domain.ErrInvalidCompany
	}
	return s.repo.ListByCompany(ctx, companyID)
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	calc, err := s.findByID(ctx, rawID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, calc.ID)
}

// Statement resolves the stored selection against the invoices and applies
// the retention arithmetic. Details pointing at deleted invoices are
// skipped with a warning; the statement stays usable.
func (s *Service) Statement(ctx context.Context, rawID string) (domain.Statement, error) {
	calc, err := s.findByID(ctx, rawID)
	if err != nil {
		return domain.Statement{}, err
	}

	details, err := s.repo.ListDetails(ctx, calc.ID)
	if err != nil {
		return domain.Statement{}, err
	}

	statement := domain.Statement{
		Calculation: *calc,
		Lines:       make([]domain.StatementLine, 0, len(details)),
	}

	for _, detail := range details {
		if !detail.Selected {
			continue
		}

		invoice, err := s.invoiceRepo.FindByID(ctx, detail.InvoiceID)
		if err != nil {
			return domain.Statement{}, err
		}
		if invoice == nil {
			s.log.Warn("calculation detail references a missing invoice",
				zap.String("calculation_id", calc.ID.String()),
				zap.String("invoice_id", detail.InvoiceID.String()),
			)
			continue
		}
		invoice.Normalize()

		retention := domain.RetentionAmount(invoice.TaxAmount, calc.RetentionRate, detail.RetentionApplied)
		payable := domain.AmountPayable(invoice.TotalAmount, calc.PayablePercent)
		taxDue := domain.TaxDue(invoice.TaxAmount, invoice.TotalAmount, calc.RetentionRate, calc.PayablePercent, detail.RetentionApplied)

		statement.Lines = append(statement.Lines, domain.StatementLine{
			InvoiceID:        invoice.ID.String(),
			Number:           invoice.Number,
			CounterpartRNC:   invoice.CounterpartRNC,
			CounterpartName:  invoice.CounterpartName,
			Currency:         invoice.Currency,
			TaxAmount:        invoice.TaxAmount,
			TotalAmount:      invoice.TotalAmount,
			RetentionApplied: detail.RetentionApplied,
			RetentionAmount:  retention,
			AmountPayable:    payable,
			TaxDue:           taxDue,
		})

		statement.TotalRetention += retention
		statement.TotalPayable += payable
		statement.TotalTaxDue += taxDue
	}

	return statement, nil
}

func (s *Service) findByID(ctx context.Context, rawID string) (*domain.TaxCalculation, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(rawID))
	if err != nil || id == 0 {
		return nil, domain.ErrInvalidID
	}

	calc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if calc == nil {
		return nil, domain.ErrNotFound
	}
	return calc, nil
}
