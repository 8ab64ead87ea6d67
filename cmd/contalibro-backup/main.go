// contalibro-backup manages database backups from the command line. Restores
// require the server to be stopped.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/quisqueyalabs/contalibro/internal/backup"
	"github.com/quisqueyalabs/contalibro/internal/clock"
	"github.com/quisqueyalabs/contalibro/internal/config"
)

func main() {
	keep := flag.Int("keep", 10, "backups kept by prune")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	svc := backup.New(logger, config.Load(), clock.NewSystemClock())

	switch flag.Arg(0) {
	case "create":
		name, err := svc.Backup()
		if err != nil {
			logger.Fatal("backup failed", zap.Error(err))
		}
		fmt.Println(name)
	case "list":
		backups, err := svc.List()
		if err != nil {
			logger.Fatal("listing failed", zap.Error(err))
		}
		for _, b := range backups {
			fmt.Printf("%s\t%d\t%s\n", b.Name, b.Size, b.CreatedAt.Format("2006-01-02 15:04:05"))
		}
	case "restore":
		if flag.Arg(1) == "" {
			usage()
		}
		if err := svc.Restore(flag.Arg(1)); err != nil {
			logger.Fatal("restore failed", zap.Error(err))
		}
	case "prune":
		svc.Prune(*keep)
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: contalibro-backup [flags] create|list|restore <name>|prune")
	flag.PrintDefaults()
	os.Exit(2)
}
