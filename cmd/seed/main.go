package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/deppfellow/employee-directory/internal/config"
	"github.com/deppfellow/employee-directory/internal/database"
	"github.com/deppfellow/employee-directory/internal/lib/utils"
	"github.com/deppfellow/employee-directory/internal/logger"
	"github.com/deppfellow/employee-directory/internal/repository"
	"github.com/deppfellow/employee-directory/internal/seed"
	"github.com/rs/zerolog/log"
)

func main() {
	count := flag.Int("count", seed.DefaultCount, "number of employees to generate")
	force := flag.Bool("force", false, "seed even when the directory already has employees")
	dryRun := flag.Bool("dry-run", false, "print the generated employees instead of storing them")
	randSeed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "random seed")
	flag.Parse()

	generator := seed.NewGenerator(*randSeed, time.Now().UTC())

	if *dryRun {
		if err := utils.PrintJSON(os.Stdout, generator.Generate(*count)); err != nil {
			log.Fatal().Err(err).Msg("failed to print employees")
		}
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.NewLogger(cfg.Observability)
	ctx := context.Background()

	if err := database.Migrate(ctx, &log, cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	db, err := database.New(cfg, &log, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	repo := repository.NewEmployeeRepository(db.Pool)
	if _, err := seed.NewSeeder(repo, generator, &log).Seed(ctx, *count, *force); err != nil {
		log.Error().Err(err).Msg("seeding failed")
		return
	}
}
