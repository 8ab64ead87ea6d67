package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Repository is implemented once per backend. Delete cascades to the
// company's invoices, tax calculations and calculation details.
type Repository interface {
	Insert(ctx context.Context, company *Company) error
	Update(ctx context.Context, company *Company) error
	Delete(ctx context.Context, id snowflake.ID) error
	FindByID(ctx context.Context, id snowflake.ID) (*Company, error)
	List(ctx context.Context) ([]Company, error)
}
