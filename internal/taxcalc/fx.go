package taxcalc

import (
	"github.com/quisqueyalabs/contalibro/internal/backend"
	"github.com/quisqueyalabs/contalibro/internal/taxcalc/domain"
	taxcalcfs "github.com/quisqueyalabs/contalibro/internal/taxcalc/firestore"
	"github.com/quisqueyalabs/contalibro/internal/taxcalc/repository"
	"github.com/quisqueyalabs/contalibro/internal/taxcalc/service"
	"go.uber.org/fx"
)

var Module = fx.Module("taxcalc.service",
	fx.Provide(ProvideRepository),
	fx.Provide(service.New),
)

func ProvideRepository(b *backend.Backends) domain.Repository {
	if b.Firestore != nil {
		return taxcalcfs.New(b.Firestore)
	}
	return repository.New(b.SQL)
}
