package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/quisqueyalabs/contalibro/internal/clock"
	"github.com/quisqueyalabs/contalibro/internal/company/domain"
	"github.com/quisqueyalabs/contalibro/internal/rnc"
	"github.com/quisqueyalabs/contalibro/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("company.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCompanyRequest) (domain.Company, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Company{}, domain.ErrInvalidName
	}
	if !rnc.IsValid(req.RNC) {
		return domain.Company{}, domain.ErrInvalidRNC
	}

	now := s.clock.Now()
	company := domain.Company{
		ID:           s.genID.Generate(),
		Name:         name,
		RNC:          rnc.Normalize(req.RNC),
		Address:      strings.TrimSpace(req.Address),
		AdvanceITBIS: req.AdvanceITBIS,
		Metadata:     datatypes.JSONMap{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, &company); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Company{}, domain.ErrDuplicateRNC
		}
		return domain.Company{}, err
	}

	return company, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateCompanyRequest) (domain.Company, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.Company{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Company{}, domain.ErrInvalidName
	}
	if !rnc.IsValid(req.RNC) {
		return domain.Company{}, domain.ErrInvalidRNC
	}

	company, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Company{}, err
	}
	if company == nil {
		return domain.Company{}, domain.ErrNotFound
	}

	company.Name = name
	company.RNC = rnc.Normalize(req.RNC)
	company.Address = strings.TrimSpace(req.Address)
	company.AdvanceITBIS = req.AdvanceITBIS
	company.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, company); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Company{}, domain.ErrDuplicateRNC
		}
		return domain.Company{}, err
	}

	return *company, nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	company, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("company deleted with its invoices and calculations",
		zap.String("company_id", id.String()),
	)
	return nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (domain.Company, error) {
	id, err := parseID(rawID)
	if err != nil {
		return domain.Company{}, err
	}

	company, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Company{}, err
	}
	if company == nil {
		return domain.Company{}, domain.ErrNotFound
	}
	return *company, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Company, error) {
	return s.repo.List(ctx)
}

func parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
