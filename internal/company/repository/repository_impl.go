package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/quisqueyalabs/contalibro/internal/company/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Insert(ctx context.Context, company *domain.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *repo) Update(ctx context.Context, company *domain.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

// Delete removes the company and everything hanging off it in one
// transaction. The explicit deletes keep the cascade independent of the
// SQLite foreign_keys pragma.
func (r *repo) Delete(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			`DELETE FROM tax_calculation_details
			 WHERE calculation_id IN (SELECT id FROM tax_calculations WHERE company_id = ?)`,
			id,
		).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM tax_calculations WHERE company_id = ?`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM invoices WHERE company_id = ?`, id).Error; err != nil {
			return err
		}
		return tx.Exec(`DELETE FROM companies WHERE id = ?`, id).Error
	})
}

func (r *repo) FindByID(ctx context.Context, id snowflake.ID) (*domain.Company, error) {
	var company domain.Company
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *repo) List(ctx context.Context) ([]domain.Company, error) {
	var companies []domain.Company
	err := r.db.WithContext(ctx).
		Model(&domain.Company{}).
		Order("name asc").
		Find(&companies).Error
	if err != nil {
		return nil, err
	}
	return companies, nil
}
