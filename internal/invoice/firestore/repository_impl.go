// Package firestore implements the invoice repository against the cloud
// document store. The identity check is an explicit query because Firestore
// has no unique indexes.
package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/bwmarrin/snowflake"
	"github.com/quisqueyalabs/contalibro/internal/backend"
	"github.com/quisqueyalabs/contalibro/internal/invoice/domain"
	"github.com/quisqueyalabs/contalibro/pkg/db/pagination"
	"google.golang.org/api/iterator"
)

type repo struct {
	client *firestore.Client
}

func New(client *firestore.Client) domain.Repository {
	return &repo{client: client}
}

func (r *repo) invoices() *firestore.CollectionRef {
	return r.client.Collection(backend.CollInvoices)
}

func (r *repo) Insert(ctx context.Context, invoice *domain.Invoice) error {
	_, err := r.invoices().Doc(invoice.ID.String()).Set(ctx, invoice)
	return err
}

func (r *repo) Update(ctx context.Context, invoice *domain.Invoice) error {
	return r.Insert(ctx, invoice)
}

func (r *repo) Delete(ctx context.Context, id snowflake.ID) error {
	_, err := r.invoices().Doc(id.String()).Delete(ctx)
	return err
}

func (r *repo) FindByID(ctx context.Context, id snowflake.ID) (*domain.Invoice, error) {
	doc, err := r.invoices().Doc(id.String()).Get(ctx)
	if err != nil {
		if backend.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var invoice domain.Invoice
	if err := doc.DataTo(&invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *repo) ExistsIdentity(ctx context.Context, companyID snowflake.ID, counterpartRNC, number string, exclude snowflake.ID) (bool, error) {
	iter := r.invoices().
		Where("company_id", "==", int64(companyID)).
		Where("counterpart_rnc", "==", counterpartRNC).
		Where("number", "==", number).
		Limit(2).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if exclude != 0 && doc.Ref.ID == exclude.String() {
			continue
		}
		return true, nil
	}
}

func (r *repo) ListByPeriod(ctx context.Context, companyID snowflake.ID, filter domain.PeriodFilter) ([]domain.Invoice, error) {
	query := r.invoices().Where("company_id", "==", int64(companyID))
	query = applyPeriod(query, filter)

	iter := query.OrderBy("date", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var invoices []domain.Invoice
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var invoice domain.Invoice
		if err := doc.DataTo(&invoice); err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}
	return invoices, nil
}

func (r *repo) List(ctx context.Context, companyID snowflake.ID, filter domain.PeriodFilter, page pagination.Pagination) ([]*domain.Invoice, error) {
	query := r.invoices().Where("company_id", "==", int64(companyID))
	query = applyPeriod(query, filter)
	query = query.OrderBy("created_at", firestore.Desc).OrderBy("id", firestore.Desc)

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
		query = query.StartAfter(createdAt, int64(id))
	}

	limit := page.PageSize
	if limit <= 0 {
		limit = 50
	}

	iter := query.Limit(limit + 1).Documents(ctx)
	defer iter.Stop()

	var invoices []*domain.Invoice
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var invoice domain.Invoice
		if err := doc.DataTo(&invoice); err != nil {
			return nil, err
		}
		invoices = append(invoices, &invoice)
	}
	return invoices, nil
}

func (r *repo) SetAttachment(ctx context.Context, id snowflake.ID, path, key string) error {
	_, err := r.invoices().Doc(id.String()).Update(ctx, []firestore.Update{
		{Path: "attachment_path", Value: path},
		{Path: "attachment_key", Value: key},
	})
	return err
}

func applyPeriod(query firestore.Query, filter domain.PeriodFilter) firestore.Query {
	if filter.SpecificDate != nil {
		day := filter.SpecificDate.Truncate(24 * time.Hour)
		return query.Where("date", ">=", day).Where("date", "<", day.Add(24*time.Hour))
	}
	if filter.Year != 0 {
		if filter.Month != 0 {
			start := time.Date(filter.Year, time.Month(filter.Month), 1, 0, 0, 0, 0, time.UTC)
			return query.Where("date", ">=", start).Where("date", "<", start.AddDate(0, 1, 0))
		}
		start := time.Date(filter.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return query.Where("date", ">=", start).Where("date", "<", start.AddDate(1, 0, 0))
	}
	return query
}
