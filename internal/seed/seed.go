// Package seed fills the reference catalog on startup so the invoice form
// works on a fresh install.
package seed

import (
	"context"
	"errors"

	referencedomain "github.com/quisqueyalabs/contalibro/internal/reference/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var defaultCurrencies = []referencedomain.Currency{
	{Code: "DOP", Name: "Peso dominicano", Symbol: "RD$", IsActive: true},
	{Code: "USD", Name: "Dólar estadounidense", Symbol: "US$", IsActive: true},
	{Code: "EUR", Name: "Euro", Symbol: "€", IsActive: true},
}

// EnsureCurrencies inserts the default currency catalog, leaving existing
// rows untouched so operators can rename or deactivate entries.
func EnsureCurrencies(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&defaultCurrencies).Error
}
