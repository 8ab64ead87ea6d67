package invoice

import (
	"github.com/quisqueyalabs/contalibro/internal/backend"
	"github.com/quisqueyalabs/contalibro/internal/invoice/domain"
	invoicefs "github.com/quisqueyalabs/contalibro/internal/invoice/firestore"
	"github.com/quisqueyalabs/contalibro/internal/invoice/repository"
	"github.com/quisqueyalabs/contalibro/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(ProvideRepository),
	fx.Provide(service.New),
)

func ProvideRepository(b *backend.Backends) domain.Repository {
	if b.Firestore != nil {
		return invoicefs.New(b.Firestore)
	}
	return repository.New(b.SQL)
}
