// Package backend opens whichever persistence backend the configuration
// selects and hands the open handles to the repository layer. Exactly one
// of the two backends is active per process.
package backend

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	"github.com/quisqueyalabs/contalibro/internal/config"
	"github.com/quisqueyalabs/contalibro/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"gorm.io/gorm"
)

// Module provides the active backend handles.
var Module = fx.Module("backend",
	fx.Provide(New),
)

// Backends carries the open handles for the active backend. SQL is nil in
// firestore mode and vice versa; Bucket is nil unless a bucket is configured.
type Backends struct {
	SQL       *gorm.DB
	Firestore *firestore.Client
	Bucket    *storage.BucketHandle
}

type Params struct {
	fx.In

	LC  fx.Lifecycle
	Cfg config.Config
	Log *zap.Logger
}

func New(p Params) (*Backends, error) {
	if p.Cfg.IsFirestore() {
		return newFirestore(p)
	}
	return newSQL(p)
}

func newSQL(p Params) (*Backends, error) {
	conn, err := db.Open(p.Cfg)
	if err != nil {
		return nil, err
	}

	p.Log.Named("backend").Info("sql backend ready",
		zap.String("type", p.Cfg.DBType),
		zap.String("path", p.Cfg.DBPath),
	)

	p.LC.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return &Backends{SQL: conn}, nil
}

func newFirestore(p Params) (*Backends, error) {
	if p.Cfg.Firestore.ProjectID == "" {
		return nil, errors.New("firestore backend requires a project id")
	}

	var opts []option.ClientOption
	if p.Cfg.Firestore.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(p.Cfg.Firestore.CredentialsFile))
	}

	ctx := context.Background()
	client, err := firestore.NewClient(ctx, p.Cfg.Firestore.ProjectID, opts...)
	if err != nil {
		return nil, err
	}

	backends := &Backends{Firestore: client}

	var objects *storage.Client
	if p.Cfg.Firestore.Bucket != "" {
		objects, err = storage.NewClient(ctx, opts...)
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		backends.Bucket = objects.Bucket(p.Cfg.Firestore.Bucket)
	}

	p.Log.Named("backend").Info("firestore backend ready",
		zap.String("project_id", p.Cfg.Firestore.ProjectID),
		zap.String("bucket", p.Cfg.Firestore.Bucket),
	)

	p.LC.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if objects != nil {
				_ = objects.Close()
			}
			return client.Close()
		},
	})

	return backends, nil
}
