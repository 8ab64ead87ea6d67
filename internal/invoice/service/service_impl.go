package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/quisqueyalabs/contalibro/internal/clock"
	companydomain "github.com/quisqueyalabs/contalibro/internal/company/domain"
	"github.com/quisqueyalabs/contalibro/internal/invoice/domain"
	"github.com/quisqueyalabs/contalibro/internal/rnc"
	thirdpartydomain "github.com/quisqueyalabs/contalibro/internal/thirdparty/domain"
	"github.com/quisqueyalabs/contalibro/pkg/db"
	"github.com/quisqueyalabs/contalibro/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// warnDirectoryUpdate is the warning surfaced when the invoice saved but the
// third-party directory could not be refreshed.
const warnDirectoryUpdate = "la factura se guardó pero el directorio de terceros no pudo actualizarse"

type Params struct {
	fx.In

	Log          *zap.Logger
	GenID        *snowflake.Node
	Clock        clock.Clock
	Repo         domain.Repository
	CompanyRepo  companydomain.Repository
	ThirdParties thirdpartydomain.Service
}

type Service struct {
	log          *zap.Logger
	genID        *snowflake.Node
	clock        clock.Clock
	repo         domain.Repository
	companyRepo  companydomain.Repository
	thirdParties thirdpartydomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		log:          p.Log.Named("invoice.service"),
		genID:        p.GenID,
		clock:        p.Clock,
		repo:         p.Repo,
		companyRepo:  p.CompanyRepo,
		thirdParties: p.ThirdParties,
	}
}

func (s *Service) Add(ctx context.Context, req domain.SaveInvoiceRequest) (domain.SaveInvoiceResponse, error) {
	invoice, err := s.buildInvoice(ctx, req, 0)
	if err != nil {
		return domain.SaveInvoiceResponse{}, err
	}

	exists, err := s.repo.ExistsIdentity(ctx, invoice.CompanyID, invoice.CounterpartRNC, invoice.Number, 0)
	if err != nil {
		return domain.SaveInvoiceResponse{}, err
	}
	if exists {
		return domain.SaveInvoiceResponse{}, domain.ErrDuplicateInvoice
	}

	if err := s.repo.Insert(ctx, invoice); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.SaveInvoiceResponse{}, domain.ErrDuplicateInvoice
		}
		return domain.SaveInvoiceResponse{}, err
	}

	return s.finishSave(ctx, invoice), nil
}

func (s *Service) Update(ctx context.Context, req domain.SaveInvoiceRequest) (domain.SaveInvoiceResponse, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.SaveInvoiceResponse{}, err
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.SaveInvoiceResponse{}, err
	}
	if current == nil {
		return domain.SaveInvoiceResponse{}, domain.ErrNotFound
	}

	invoice, err := s.buildInvoice(ctx, req, id)
	if err != nil {
		return domain.SaveInvoiceResponse{}, err
	}
	invoice.CreatedAt = current.CreatedAt
	if invoice.AttachmentPath == "" {
		invoice.AttachmentPath = current.AttachmentPath
	}
	invoice.AttachmentKey = current.AttachmentKey

	exists, err := s.repo.ExistsIdentity(ctx, invoice.CompanyID, invoice.CounterpartRNC, invoice.Number, id)
	if err != nil {
		return domain.SaveInvoiceResponse{}, err
	}
	if exists {
		return domain.SaveInvoiceResponse{}, domain.ErrDuplicateInvoice
	}

	if err := s.repo.Update(ctx, invoice); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.SaveInvoiceResponse{}, domain.ErrDuplicateInvoice
		}
		return domain.SaveInvoiceResponse{}, err
	}

	return s.finishSave(ctx, invoice), nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, rawID string) (domain.Invoice, error) {
	id, err := parseID(rawID)
	if err != nil {
		return domain.Invoice{}, err
	}

	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoice == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}

	invoice.Normalize()
	return *invoice, nil
}

func (s *Service) List(ctx context.Context, req domain.ListInvoiceRequest) (domain.ListInvoiceResponse, error) {
	companyID, err := parseCompanyID(req.CompanyID)
	if err != nil {
		return domain.ListInvoiceResponse{}, err
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, companyID, req.Filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListInvoiceResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(invoice *domain.Invoice) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        invoice.ID.String(),
			CreatedAt: invoice.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	invoices := make([]domain.Invoice, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		item.Normalize()
		invoices = append(invoices, *item)
	}

	return domain.ListInvoiceResponse{
		PageInfo: *pageInfo,
		Invoices: invoices,
	}, nil
}

// Dashboard fetches the company's invoices for the period, partitions them
// by kind and sums the totals. Every returned row is normalized so the UI
// never sees a zero exchange rate or a missing currency.
func (s *Service) Dashboard(ctx context.Context, req domain.DashboardRequest) (domain.DashboardData, error) {
	companyID, err := parseCompanyID(req.CompanyID)
	if err != nil {
		return domain.DashboardData{}, err
	}

	invoices, err := s.repo.ListByPeriod(ctx, companyID, req.Filter)
	if err != nil {
		return domain.DashboardData{}, err
	}

	data := domain.DashboardData{Transactions: make([]domain.Invoice, 0, len(invoices))}
	for i := range invoices {
		invoice := invoices[i]
		invoice.Normalize()

		switch invoice.Kind {
		case domain.KindIssued:
			data.Summary.TotalIncome += invoice.TotalDOP
			data.Summary.TaxIncome += invoice.TaxAmount
		case domain.KindExpense:
			data.Summary.TotalExpense += invoice.TotalDOP
			data.Summary.TaxExpense += invoice.TaxAmount
		}
		data.Transactions = append(data.Transactions, invoice)
	}

	data.Summary.NetAmount = data.Summary.TotalIncome - data.Summary.TotalExpense
	data.Summary.NetTax = data.Summary.TaxIncome - data.Summary.TaxExpense
	return data, nil
}

func (s *Service) SetAttachment(ctx context.Context, rawID, path, key string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return domain.ErrNotFound
	}

	return s.repo.SetAttachment(ctx, id, path, key)
}

// buildInvoice validates the request and assembles the row to store. The
// home-currency total is always recomputed here; a stored TotalDOP never
// drifts from TotalAmount * ExchangeRate.
func (s *Service) buildInvoice(ctx context.Context, req domain.SaveInvoiceRequest, id snowflake.ID) (*domain.Invoice, error) {
	companyID, err := parseCompanyID(req.CompanyID)
	if err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrInvalidCompany
	}

	kind := domain.Kind(strings.ToLower(strings.TrimSpace(req.Kind)))
	if !kind.Valid() {
		return nil, domain.ErrInvalidKind
	}

	number := strings.TrimSpace(req.Number)
	if number == "" {
		return nil, domain.ErrInvalidNumber
	}

	if !rnc.IsValid(req.CounterpartRNC) {
		return nil, domain.ErrInvalidRNC
	}

	if req.Date.IsZero() {
		return nil, domain.ErrInvalidDate
	}

	if req.ExchangeRate <= 0 {
		return nil, domain.ErrInvalidExchangeRate
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "DOP"
	}

	now := s.clock.Now()
	if id == 0 {
		id = s.genID.Generate()
	}

	return &domain.Invoice{
		ID:              id,
		CompanyID:       companyID,
		Kind:            kind,
		Date:            req.Date.UTC(),
		Number:          number,
		CounterpartRNC:  rnc.Normalize(req.CounterpartRNC),
		CounterpartName: strings.TrimSpace(req.CounterpartName),
		Currency:        currency,
		ExchangeRate:    req.ExchangeRate,
		TaxAmount:       req.TaxAmount,
		TotalAmount:     req.TotalAmount,
		TotalDOP:        req.TotalAmount * req.ExchangeRate,
		AttachmentPath:  strings.TrimSpace(req.AttachmentPath),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// finishSave runs the best-effort directory upsert. A failure there leaves
// the invoice in place and comes back as a warning, never silently.
func (s *Service) finishSave(ctx context.Context, invoice *domain.Invoice) domain.SaveInvoiceResponse {
	resp := domain.SaveInvoiceResponse{Invoice: *invoice}

	err := s.thirdParties.Upsert(ctx, thirdpartydomain.UpsertRequest{
		RNC:  invoice.CounterpartRNC,
		Name: invoice.CounterpartName,
	})
	if err != nil {
		s.log.Warn("third-party directory upsert failed",
			zap.String("invoice_id", invoice.ID.String()),
			zap.String("rnc", invoice.CounterpartRNC),
			zap.Error(err),
		)
		resp.Warning = warnDirectoryUpdate
	}

	return resp
}

func parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func parseCompanyID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidCompany
	}
	return id, nil
}
