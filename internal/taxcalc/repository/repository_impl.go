package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/quisqueyalabs/contalibro/internal/taxcalc/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

// Save upserts the header and replaces the detail set in one transaction.
// Saving is a full overwrite, not a diff.
func (r *repo) Save(ctx context.Context, calc *domain.TaxCalculation, details []domain.TaxCalculationDetail) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"company_id", "name", "period_start", "period_end", "retention_rate", "payable_percent",
			}),
		}).Create(calc).Error; err != nil {
			return err
		}

		if err := tx.Exec(`DELETE FROM tax_calculation_details WHERE calculation_id = ?`, calc.ID).Error; err != nil {
			return err
		}

		if len(details) == 0 {
			return nil
		}
		return tx.Create(&details).Error
	})
}

func (r *repo) FindByID(ctx context.Context, id snowflake.ID) (*domain.TaxCalculation, error) {
	var calc domain.TaxCalculation
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&calc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &calc, nil
}

func (r *repo) ListByCompany(ctx context.Context, companyID snowflake.ID) ([]domain.TaxCalculation, error) {
	var calcs []domain.TaxCalculation
	err := r.db.WithContext(ctx).
		Model(&domain.TaxCalculation{}).
		Where("company_id = ?", companyID).
		Order("created_at desc, id desc").
		Find(&calcs).Error
	if err != nil {
		return nil, err
	}
	return calcs, nil
}

func (r *repo) ListDetails(ctx context.Context, calcID snowflake.ID) ([]domain.TaxCalculationDetail, error) {
	var details []domain.TaxCalculationDetail
	err := r.db.WithContext(ctx).
		Model(&domain.TaxCalculationDetail{}).
		Where("calculation_id = ?", calcID).
		Find(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (r *repo) Delete(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM tax_calculation_details WHERE calculation_id = ?`, id).Error; err != nil {
			return err
		}
		return tx.Exec(`DELETE FROM tax_calculations WHERE id = ?`, id).Error
	})
}
