package company

import (
	"github.com/quisqueyalabs/contalibro/internal/backend"
	"github.com/quisqueyalabs/contalibro/internal/company/domain"
	companyfs "github.com/quisqueyalabs/contalibro/internal/company/firestore"
	"github.com/quisqueyalabs/contalibro/internal/company/repository"
	"github.com/quisqueyalabs/contalibro/internal/company/service"
	"go.uber.org/fx"
)

var Module = fx.Module("company.service",
	fx.Provide(ProvideRepository),
	fx.Provide(service.New),
)

func ProvideRepository(b *backend.Backends) domain.Repository {
	if b.Firestore != nil {
		return companyfs.New(b.Firestore)
	}
	return repository.New(b.SQL)
}
