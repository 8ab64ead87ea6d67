package attachment

import (
	"bytes"
	"context"
	"io"

	"cloud.google.com/go/storage"
	invoicedomain "github.com/quisqueyalabs/contalibro/internal/invoice/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log      *zap.Logger
	Local    *LocalStore
	Bucket   *storage.BucketHandle `optional:"true"`
	Invoices invoicedomain.Service
}

// Service attaches a file to an invoice: local copy always, object-storage
// upload when a bucket is configured, then records both references on the
// invoice row.
type Service struct {
	log      *zap.Logger
	local    *LocalStore
	bucket   *storage.BucketHandle
	invoices invoicedomain.Service
}

func New(p Params) *Service {
	return &Service{
		log:      p.Log.Named("attachment.service"),
		local:    p.Local,
		bucket:   p.Bucket,
		invoices: p.Invoices,
	}
}

// Attach stores the file for the given invoice and returns the local path
// and object key (empty without a bucket).
func (s *Service) Attach(ctx context.Context, invoiceID, originalName string, content io.Reader) (string, string, error) {
	invoice, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return "", "", err
	}

	// The payload is read once and reused for the cloud upload.
	data, err := io.ReadAll(content)
	if err != nil {
		return "", "", err
	}

	companyID := invoice.CompanyID.String()
	path, err := s.local.Save(companyID, invoice.Date, invoice.Number, invoice.CounterpartRNC, originalName, bytes.NewReader(data))
	if err != nil {
		return "", "", err
	}

	key := ""
	if s.bucket != nil {
		key = s.local.Key(companyID, invoice.Date, invoice.Number, invoice.CounterpartRNC, originalName)
		if err := s.upload(ctx, key, data); err != nil {
			return "", "", err
		}
	}

	if err := s.invoices.SetAttachment(ctx, invoiceID, path, key); err != nil {
		return "", "", err
	}

	return path, key, nil
}

func (s *Service) upload(ctx context.Context, key string, data []byte) error {
	w := s.bucket.Object(key).NewWriter(ctx)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
