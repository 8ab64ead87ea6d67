// Package firestore implements the company repository against the cloud
// document store.
package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/bwmarrin/snowflake"
	"github.com/quisqueyalabs/contalibro/internal/backend"
	"github.com/quisqueyalabs/contalibro/internal/company/domain"
	"google.golang.org/api/iterator"
)

type repo struct {
	client *firestore.Client
}

func New(client *firestore.Client) domain.Repository {
	return &repo{client: client}
}

func (r *repo) companies() *firestore.CollectionRef {
	return r.client.Collection(backend.CollCompanies)
}

func (r *repo) Insert(ctx context.Context, company *domain.Company) error {
	_, err := r.companies().Doc(company.ID.String()).Set(ctx, company)
	return err
}

func (r *repo) Update(ctx context.Context, company *domain.Company) error {
	return r.Insert(ctx, company)
}

// Delete removes the company document and every invoice, calculation and
// detail that references it. Firestore has no cascading deletes, so the
// dependents are collected by query and removed through a bulk writer.
func (r *repo) Delete(ctx context.Context, id snowflake.ID) error {
	bw := r.client.BulkWriter(ctx)
	var jobs []*firestore.BulkWriterJob

	invoices := r.client.Collection(backend.CollInvoices).
		Where("company_id", "==", int64(id)).
		Documents(ctx)
	jobs, err := deleteAll(bw, jobs, invoices)
	if err != nil {
		bw.End()
		return err
	}

	calcs := r.client.Collection(backend.CollTaxCalculations).
		Where("company_id", "==", int64(id)).
		Documents(ctx)
	for {
		doc, err := calcs.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			bw.End()
			return err
		}
		details := doc.Ref.Collection(backend.CollDetails).Documents(ctx)
		jobs, err = deleteAll(bw, jobs, details)
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

	job, err := bw.Delete(r.companies().Doc(id.String()))
	if err != nil {
		bw.End()
		return err
	}
	jobs = append(jobs, job)

	return backend.AwaitBulk(bw, jobs)
}

func (r *repo) FindByID(ctx context.Context, id snowflake.ID) (*domain.Company, error) {
	doc, err := r.companies().Doc(id.String()).Get(ctx)
	if err != nil {
		if backend.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var company domain.Company
	if err := doc.DataTo(&company); err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *repo) List(ctx context.Context) ([]domain.Company, error) {
	iter := r.companies().OrderBy("name", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var companies []domain.Company
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var company domain.Company
		if err := doc.DataTo(&company); err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}
	return companies, nil
}

func deleteAll(bw *firestore.BulkWriter, jobs []*firestore.BulkWriterJob, iter *firestore.DocumentIterator) ([]*firestore.BulkWriterJob, error) {
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return jobs, nil
		}
		if err != nil {
			return jobs, err
		}
		job, err := bw.Delete(doc.Ref)
		if err != nil {
			return jobs, err
		}
		jobs = append(jobs, job)
	}
}
