package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"codal-docs-be/internal/config"
	"codal-docs-be/internal/pkg/logger"
	"codal-docs-be/internal/repository/memory"
	"codal-docs-be/internal/repository/unitofwork"
	"codal-docs-be/internal/service"
	"codal-docs-be/pkg/database"
	"codal-docs-be/pkg/events"
	pktNats "codal-docs-be/pkg/nats"

	"github.com/fatih/color"
)

var defaultSubjects = []string{
	"Civil Law",
	"Criminal Law",
	"Commercial Law",
	"Labor Law",
	"Taxation Law",
	"Political Law",
	"Remedial Law",
	"Legal Ethics",
}

func main() {
	subjectsFlag := flag.String("subjects", "", "comma separated subject names, defaults to the built-in list")
	flag.Parse()

	subjects := defaultSubjects
	if *subjectsFlag != "" {
		subjects = strings.Split(*subjectsFlag, ",")
	}

	cfg := config.Load()
	db, err := database.NewGormDB(cfg.Database.Driver, cfg.Database.Connection)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// running servers reload their subject list on SUBJECTS_CHANGED
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.App.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			color.Yellow("NATS unavailable, running servers keep their cached subjects: %v", err)
		} else {
			defer pub.Close()
			publisher = pub
		}
	}

	taxonomy := service.NewTaxonomyService(
		unitofwork.NewRepositoryFactory(db),
		memory.NewTaxonomyCache(),
		nil,
		publisher,
		cfg.Sync.PrimarySubject,
		logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction()),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	color.Cyan("🚀 Seeding %d subjects", len(subjects))
	added, err := taxonomy.SeedSubjects(ctx, subjects)
	if err != nil {
		color.Red("Seeding failed: %v", err)
		os.Exit(1)
	}

	if added == 0 {
		color.Yellow("Nothing to do, every subject already exists")
		return
	}
	color.Green("✅ Added %d subjects", added)
}
