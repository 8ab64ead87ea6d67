package attachment

import (
	"cloud.google.com/go/storage"
	"github.com/quisqueyalabs/contalibro/internal/backend"
	"github.com/quisqueyalabs/contalibro/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("attachment",
	fx.Provide(ProvideLocalStore),
	fx.Provide(ProvideBucket),
	fx.Provide(New),
)

func ProvideLocalStore(cfg config.Config) *LocalStore {
	return NewLocalStore(cfg.AttachmentRoot)
}

func ProvideBucket(b *backend.Backends) *storage.BucketHandle {
	return b.Bucket
}
