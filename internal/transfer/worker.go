// Package transfer copies a SQL installation into Firestore. It is the
// one-shot worker behind the cloud migration command; the source database
// is never written to.
package transfer

import (
	"context"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/quisqueyalabs/contalibro/internal/backend"
	companydomain "github.com/quisqueyalabs/contalibro/internal/company/domain"
	invoicedomain "github.com/quisqueyalabs/contalibro/internal/invoice/domain"
	taxcalcdomain "github.com/quisqueyalabs/contalibro/internal/taxcalc/domain"
	thirdpartydomain "github.com/quisqueyalabs/contalibro/internal/thirdparty/domain"
)

// Config controls batch sizing.
type Config struct {
	BatchSize int
}

func (c Config) withDefaults() Config {
	if c.BatchSize <= 0 {
		c.BatchSize = 200
	}
	return c
}

// Progress reports one flushed batch.
type Progress struct {
	Collection string
	Copied     int
	Total      int64
}

type Worker struct {
	log    *zap.Logger
	db     *gorm.DB
	fs     *firestore.Client
	cfg    Config
	events chan Progress
}

func NewWorker(log *zap.Logger, db *gorm.DB, fs *firestore.Client, cfg Config) *Worker {
	return &Worker{
		log:    log.Named("transfer"),
		db:     db,
		fs:     fs,
		cfg:    cfg.withDefaults(),
		events: make(chan Progress, 16),
	}
}

// Events reports batch progress while Run is active. The channel closes
// when Run returns.
func (w *Worker) Events() <-chan Progress {
	return w.events
}

// Run copies every collection in dependency order. Documents are keyed by
// their SQL ids, so rerunning after a partial failure overwrites instead
// of duplicating.
func (w *Worker) Run(ctx context.Context) error {
	defer close(w.events)

	if err := w.copyCompanies(ctx); err != nil {
		return err
	}
	if err := w.copyThirdParties(ctx); err != nil {
		return err
	}
	if err := w.copyInvoices(ctx); err != nil {
		return err
	}
	return w.copyCalculations(ctx)
}

func (w *Worker) copyCompanies(ctx context.Context) error {
	total, err := w.count(ctx, &companydomain.Company{})
	if err != nil {
		return err
	}

	copied := 0
	var rows []companydomain.Company
	return w.db.WithContext(ctx).Model(&companydomain.Company{}).
		FindInBatches(&rows, w.cfg.BatchSize, func(_ *gorm.DB, _ int) error {
			if err := ctx.Err(); err != nil {
				return err
			}

			bw := w.fs.BulkWriter(ctx)
			jobs := make([]*firestore.BulkWriterJob, 0, len(rows))
			for i := range rows {
				doc := w.fs.Collection(backend.CollCompanies).Doc(rows[i].ID.String())
				job, err := bw.Set(doc, rows[i])
				if err != nil {
					bw.End()
					return err
				}
				jobs = append(jobs, job)
			}
			if err := backend.AwaitBulk(bw, jobs); err != nil {
				return err
			}

			copied += len(rows)
			w.emit(ctx, Progress{Collection: backend.CollCompanies, Copied: copied, Total: total})
			return nil
		}).Error
}

func (w *Worker) copyThirdParties(ctx context.Context) error {
	total, err := w.count(ctx, &thirdpartydomain.ThirdParty{})
	if err != nil {
		return err
	}

	copied := 0
	var rows []thirdpartydomain.ThirdParty
	return w.db.WithContext(ctx).Model(&thirdpartydomain.ThirdParty{}).
		FindInBatches(&rows, w.cfg.BatchSize, func(_ *gorm.DB, _ int) error {
			if err := ctx.Err(); err != nil {
				return err
			}

			bw := w.fs.BulkWriter(ctx)
			jobs := make([]*firestore.BulkWriterJob, 0, len(rows))
			for i := range rows {
				doc := w.fs.Collection(backend.CollThirdParties).Doc(rows[i].RNC)
				job, err := bw.Set(doc, rows[i])
				if err != nil {
					bw.End()
					return err
				}
				jobs = append(jobs, job)
			}
			if err := backend.AwaitBulk(bw, jobs); err != nil {
				return err
			}

			copied += len(rows)
			w.emit(ctx, Progress{Collection: backend.CollThirdParties, Copied: copied, Total: total})
			return nil
		}).Error
}

func (w *Worker) copyInvoices(ctx context.Context) error {
	total, err := w.count(ctx, &invoicedomain.Invoice{})
	if err != nil {
		return err
	}

	copied := 0
	var rows []invoicedomain.Invoice
	return w.db.WithContext(ctx).Model(&invoicedomain.Invoice{}).
		FindInBatches(&rows, w.cfg.BatchSize, func(_ *gorm.DB, _ int) error {
			if err := ctx.Err(); err != nil {
				return err
			}

			bw := w.fs.BulkWriter(ctx)
			jobs := make([]*firestore.BulkWriterJob, 0, len(rows))
			for i := range rows {
				rows[i].Normalize()
				doc := w.fs.Collection(backend.CollInvoices).Doc(rows[i].ID.String())
				job, err := bw.Set(doc, rows[i])
				if err != nil {
					bw.End()
					return err
				}
				jobs = append(jobs, job)
			}
			if err := backend.AwaitBulk(bw, jobs); err != nil {
				return err
			}

			copied += len(rows)
			w.emit(ctx, Progress{Collection: backend.CollInvoices, Copied: copied, Total: total})
			return nil
		}).Error
}

func (w *Worker) copyCalculations(ctx context.Context) error {
	total, err := w.count(ctx, &taxcalcdomain.TaxCalculation{})
	if err != nil {
		return err
	}

	copied := 0
	var rows []taxcalcdomain.TaxCalculation
	return w.db.WithContext(ctx).Model(&taxcalcdomain.TaxCalculation{}).
		FindInBatches(&rows, w.cfg.BatchSize, func(_ *gorm.DB, _ int) error {
			for i := range rows {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := w.copyCalculation(ctx, rows[i]); err != nil {
					return err
				}
				copied++
			}
			w.emit(ctx, Progress{Collection: backend.CollTaxCalculations, Copied: copied, Total: total})
			return nil
		}).Error
}

func (w *Worker) copyCalculation(ctx context.Context, calc taxcalcdomain.TaxCalculation) error {
	var details []taxcalcdomain.TaxCalculationDetail
	err := w.db.WithContext(ctx).
		Where("calculation_id = ?", calc.ID).
		Find(&details).Error
	if err != nil {
		return err
	}

	header := w.fs.Collection(backend.CollTaxCalculations).Doc(calc.ID.String())

	bw := w.fs.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(details)+1)
	job, err := bw.Set(header, calc)
	if err != nil {
		bw.End()
		return err
	}
	jobs = append(jobs, job)
	for i := range details {
		doc := header.Collection(backend.CollDetails).Doc(details[i].ID)
		job, err := bw.Set(doc, details[i])
		if err != nil {
			bw.End()
			return err
		}
		jobs = append(jobs, job)
	}
	return backend.AwaitBulk(bw, jobs)
}

func (w *Worker) count(ctx context.Context, model any) (int64, error) {
	var total int64
	err := w.db.WithContext(ctx).Model(model).Count(&total).Error
	return total, err
}

// emit never blocks the copy; a slow listener loses intermediate events.
func (w *Worker) emit(_ context.Context, p Progress) {
	select {
	case w.events <- p:
	default:
		w.log.Debug("progress event dropped",
			zap.String("collection", p.Collection),
			zap.Int("copied", p.Copied),
		)
	}
}
