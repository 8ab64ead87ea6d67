package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/quisqueyalabs/contalibro/pkg/db/pagination"
)

// Repository is implemented once per backend. The SQL implementation backs
// the identity check with a unique index; the document implementation runs
// the same check as a query because Firestore has no unique constraints.
type Repository interface {
	Insert(ctx context.Context, invoice *Invoice) error
	Update(ctx context.Context, invoice *Invoice) error
	Delete(ctx context.Context, id snowflake.ID) error
	FindByID(ctx context.Context, id snowflake.ID) (*Invoice, error)
	// ExistsIdentity reports whether another invoice already carries the
	// (company, counterpart RNC, number) triple. exclude skips one id so
	// updates do not collide with themselves.
	ExistsIdentity(ctx context.Context, companyID snowflake.ID, counterpartRNC, number string, exclude snowflake.ID) (bool, error)
	// ListByPeriod returns every invoice of the company matching the
	// filter, ordered by date.
	ListByPeriod(ctx context.Context, companyID snowflake.ID, filter PeriodFilter) ([]Invoice, error)
	List(ctx context.Context, companyID snowflake.ID, filter PeriodFilter, page pagination.Pagination) ([]*Invoice, error)
	SetAttachment(ctx context.Context, id snowflake.ID, path, key string) error
}
