// Command studyctl administers the class roster and the study record backups
package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/antigone-study/backend/internal/config"
	"github.com/antigone-study/backend/internal/kvstore"
	"github.com/antigone-study/backend/internal/logger"
	"github.com/antigone-study/backend/internal/repositories"
	"github.com/antigone-study/backend/internal/roster"
	"github.com/antigone-study/backend/internal/services"
)

func main() {
	cfg, err := config.LoadStore()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Logging.Level, cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	store, closeStore, err := kvstore.Open(context.Background(), cfg.StoreOptions(), zapLogger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	studentsRepo := repositories.NewStudentsRepository(store, zapLogger)
	directory := services.NewDirectoryService(studentsRepo, roster.NewFileSource(cfg.Content.RosterPath), zapLogger)
	backups := services.NewBackupService(store, cfg.Store.Driver, zapLogger)
	backups.InvalidateOnImport(directory)

	cli := &commandLine{
		directory: directory,
		backups:   backups,
		out:       os.Stdout,
	}

	if err := cli.run(context.Background(), os.Args); err != nil {
		if errors.Is(err, errHelp) {
			os.Exit(2)
		}
		log.Fatalf("Error: %v", err)
	}
}
