// contalibro-migrate copies a local SQL installation into Firestore. Run it
// with the server stopped; the source database is only read.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/quisqueyalabs/contalibro/internal/config"
	"github.com/quisqueyalabs/contalibro/internal/transfer"
	"github.com/quisqueyalabs/contalibro/pkg/db"
)

func main() {
	batchSize := flag.Int("batch", 200, "rows copied per batch")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := config.Load()
	if cfg.Firestore.ProjectID == "" {
		logger.Fatal("firestore.project_id is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(cfg)
	if err != nil {
		logger.Fatal("open source database", zap.Error(err))
	}

	var opts []option.ClientOption
	if cfg.Firestore.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firestore.CredentialsFile))
	}
	client, err := firestore.NewClient(ctx, cfg.Firestore.ProjectID, opts...)
	if err != nil {
		logger.Fatal("open firestore", zap.Error(err))
	}
	defer client.Close()

	worker := transfer.NewWorker(logger, conn, client, transfer.Config{BatchSize: *batchSize})

	go func() {
		for p := range worker.Events() {
			logger.Info("copying",
				zap.String("collection", p.Collection),
				zap.Int("copied", p.Copied),
				zap.Int64("total", p.Total),
			)
		}
	}()

	if err := worker.Run(ctx); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
	logger.Info("migration complete")
}
