package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Repository is implemented once per backend. Save must write the header
// and the replaced detail set together: the SQL implementation uses one
// transaction, the document implementation a bulk write.
type Repository interface {
	Save(ctx context.Context, calc *TaxCalculation, details []TaxCalculationDetail) error
	FindByID(ctx context.Context, id snowflake.ID) (*TaxCalculation, error)
	ListByCompany(ctx context.Context, companyID snowflake.ID) ([]TaxCalculation, error)
	ListDetails(ctx context.Context, calcID snowflake.ID) ([]TaxCalculationDetail, error)
	Delete(ctx context.Context, id snowflake.ID) error
}
