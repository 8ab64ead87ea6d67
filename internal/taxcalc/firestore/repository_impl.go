// Package firestore implements the tax-calculation repository against the
// cloud document store. Details live in a subcollection under each
// calculation document.
package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/bwmarrin/snowflake"
	"github.com/quisqueyalabs/contalibro/internal/backend"
	"github.com/quisqueyalabs/contalibro/internal/taxcalc/domain"
	"google.golang.org/api/iterator"
)

type repo struct {
	client *firestore.Client
}

func New(client *firestore.Client) domain.Repository {
	return &repo{client: client}
}

func (r *repo) calculations() *firestore.CollectionRef {
	return r.client.Collection(backend.CollTaxCalculations)
}

func (r *repo) details(calcID snowflake.ID) *firestore.CollectionRef {
	return r.calculations().Doc(calcID.String()).Collection(backend.CollDetails)
}

// Save writes the header, clears the details subcollection and writes the
// new selection through one bulk writer.
func (r *repo) Save(ctx context.Context, calc *domain.TaxCalculation, details []domain.TaxCalculationDetail) error {
	if _, err := r.calculations().Doc(calc.ID.String()).Set(ctx, calc); err != nil {
		return err
	}

	bw := r.client.BulkWriter(ctx)
	var jobs []*firestore.BulkWriterJob

	existing := r.details(calc.ID).Documents(ctx)
	for {
		doc, err := existing.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			bw.End()
			return err
		}
		job, err := bw.Delete(doc.Ref)
		if err != nil {
			bw.End()
			return err
		}
		jobs = append(jobs, job)
	}

	for i := range details {
		detail := details[i]
		job, err := bw.Set(r.details(calc.ID).Doc(detail.ID), detail)
		if err != nil {
			bw.End()
			return err
		}
		jobs = append(jobs, job)
	}

	return backend.AwaitBulk(bw, jobs)
}

func (r *repo) FindByID(ctx context.Context, id snowflake.ID) (*domain.TaxCalculation, error) {
	doc, err := r.calculations().Doc(id.String()).Get(ctx)
	if err != nil {
		if backend.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var calc domain.TaxCalculation
	if err := doc.DataTo(&calc); err != nil {
		return nil, err
	}
	return &calc, nil
}

func (r *repo) ListByCompany(ctx context.Context, companyID snowflake.ID) ([]domain.TaxCalculation, error) {
	iter := r.calculations().
		Where("company_id", "==", int64(companyID)).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var calcs []domain.TaxCalculation
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var calc domain.TaxCalculation
		if err := doc.DataTo(&calc); err != nil {
			return nil, err
		}
		calcs = append(calcs, calc)
	}
	return calcs, nil
}

func (r *repo) ListDetails(ctx context.Context, calcID snowflake.ID) ([]domain.TaxCalculationDetail, error) {
	iter := r.details(calcID).Documents(ctx)
	defer iter.Stop()

	var details []domain.TaxCalculationDetail
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var detail domain.TaxCalculationDetail
		if err := doc.DataTo(&detail); err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

func (r *repo) Delete(ctx context.Context, id snowflake.ID) error {
	bw := r.client.BulkWriter(ctx)
	var jobs []*firestore.BulkWriterJob

	existing := r.details(id).Documents(ctx)
	for {
		doc, err := existing.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			bw.End()
			return err
		}
		job, err := bw.Delete(doc.Ref)
		if err != nil {
			bw.End()
			return err
		}
		jobs = append(jobs, job)
	}

	job, err := bw.Delete(r.calculations().Doc(id.String()))
	if err != nil {
		bw.End()
		return err
	}
	jobs = append(jobs, job)

	return backend.AwaitBulk(bw, jobs)
}
