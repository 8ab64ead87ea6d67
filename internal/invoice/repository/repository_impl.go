package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/quisqueyalabs/contalibro/internal/invoice/domain"
	"github.com/quisqueyalabs/contalibro/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Insert(ctx context.Context, invoice *domain.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *repo) Update(ctx context.Context, invoice *domain.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

func (r *repo) Delete(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM invoices WHERE id = ?`, id).Error
}

func (r *repo) FindByID(ctx context.Context, id snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *repo) ExistsIdentity(ctx context.Context, companyID snowflake.ID, counterpartRNC, number string, exclude snowflake.ID) (bool, error) {
	var count int64
	stmt := r.db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("company_id = ? AND counterpart_rnc = ? AND number = ?", companyID, counterpartRNC, number)
	if exclude != 0 {
		stmt = stmt.Where("id <> ?", exclude)
	}
	if err := stmt.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) ListByPeriod(ctx context.Context, companyID snowflake.ID, filter domain.PeriodFilter) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	stmt := applyPeriod(r.db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("company_id = ?", companyID), filter)
	err := stmt.
		Order("date asc, id asc").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repo) List(ctx context.Context, companyID snowflake.ID, filter domain.PeriodFilter, page pagination.Pagination) ([]*domain.Invoice, error) {
	var invoices []*domain.Invoice
	stmt := applyPeriod(r.db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("company_id = ?", companyID), filter)

	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			return nil, err
		}
		createdAt, err := time.Parse(time.RFC3339, cursor.CreatedAt)
		if err != nil {
			return nil, err
		}
		id, err := snowflake.ParseString(cursor.ID)
		if err != nil {
			return nil, err
		}
		stmt = stmt.Where("(created_at, id) < (?, ?)", createdAt, id)
	}

	limit := page.PageSize
	if limit <= 0 {
		limit = 50
	}

	err := stmt.
		Order("created_at desc, id desc").
		Limit(limit + 1).
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repo) SetAttachment(ctx context.Context, id snowflake.ID, path, key string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]any{"attachment_path": path, "attachment_key": key}).Error
}

func applyPeriod(stmt *gorm.DB, filter domain.PeriodFilter) *gorm.DB {
	if filter.SpecificDate != nil {
		day := filter.SpecificDate.Truncate(24 * time.Hour)
		return stmt.Where("date >= ? AND date < ?", day, day.Add(24*time.Hour))
	}
	if filter.Year != 0 {
		if filter.Month != 0 {
			start := time.Date(filter.Year, time.Month(filter.Month), 1, 0, 0, 0, 0, time.UTC)
			return stmt.Where("date >= ? AND date < ?", start, start.AddDate(0, 1, 0))
		}
		start := time.Date(filter.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return stmt.Where("date >= ? AND date < ?", start, start.AddDate(1, 0, 0))
	}
	return stmt
}
