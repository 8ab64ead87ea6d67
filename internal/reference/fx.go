package reference

import (
	"github.com/quisqueyalabs/contalibro/internal/backend"
	"github.com/quisqueyalabs/contalibro/internal/reference/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("reference",
	fx.Provide(ProvideRepository),
)

func ProvideRepository(b *backend.Backends) domain.Repository {
	if b.Firestore != nil {
		return NewStaticRepository()
	}
	return NewRepository(b.SQL)
}
