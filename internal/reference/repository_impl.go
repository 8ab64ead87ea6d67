package reference

import (
	"context"

	"github.com/quisqueyalabs/contalibro/internal/reference/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	var currencies []domain.Currency
	err := r.db.WithContext(ctx).
		Raw(`SELECT code, name, symbol FROM currencies WHERE is_active = true ORDER BY code`).
		Scan(&currencies).Error
	if err != nil {
		return nil, err
	}
	return currencies, nil
}

// staticRepository backs the catalog on the document backend. The catalog
// is tiny and fixed, so there is no point keeping it in Firestore.
type staticRepository struct{}

func NewStaticRepository() domain.Repository {
	return staticRepository{}
}

func (staticRepository) ListCurrencies(context.Context) ([]domain.Currency, error) {
	return []domain.Currency{
		{Code: "DOP", Name: "Peso dominicano", Symbol: "RD$", IsActive: true},
		{Code: "EUR", Name: "Euro", Symbol: "€", IsActive: true},
		{Code: "USD", Name: "Dólar estadounidense", Symbol: "US$", IsActive: true},
	}, nil
}
