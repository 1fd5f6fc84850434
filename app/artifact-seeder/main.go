package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"rfmInsight/business/artifact"
	fileRepo "rfmInsight/internal/repository/file"
	psqlRepo "rfmInsight/internal/repository/postgres"
	redisRepo "rfmInsight/internal/repository/redis"
	"rfmInsight/pkg/config"
	"rfmInsight/pkg/database"
	redisdb "rfmInsight/pkg/database/redis"
	"rfmInsight/pkg/logger"

	flags "github.com/jessevdk/go-flags"
)

// Options for copying the artifact files into a Redis or Postgres store.
//
//	go run ./app/artifact-seeder --target redis --dir models
type Options struct {
	Target string `long:"target" description:"store to seed" choice:"redis" choice:"postgres" required:"true"`
	Dir    string `long:"dir" description:"directory holding the artifact files (default: ARTIFACT_DIR)"`
}

func main() {
	var opts Options
	if _, err := flags.NewParser(&opts, flags.Default).Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.App.Environment)

	dir := cfg.Artifacts.Dir
	if opts.Dir != "" {
		dir = opts.Dir
	}
	names := artifact.Names{
		Similarity: cfg.Artifacts.SimilarityName,
		Scaler:     cfg.Artifacts.ScalerName,
		Cluster:    cfg.Artifacts.ClusterName,
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Artifacts.LoadTimeout)
	defer cancel()

	// Only a set the server would accept is written.
	files := fileRepo.NewArtifactRepository(dir)
	bundle, err := artifact.LoadBundle(ctx, config.SourceFile, artifact.NewBlobLoader(files, names))
	if err != nil {
		logger.Fatal("Refusing to seed invalid artifacts", "error", err, "dir", dir)
	}

	switch opts.Target {
	case config.SourceRedis:
		err = seedRedis(ctx, cfg, files, names)
	case config.SourcePostgres:
		err = seedPostgres(ctx, cfg, files, names, bundle)
	}
	if err != nil {
		logger.Fatal("Failed to seed artifacts", "error", err, "target", opts.Target)
	}

	logger.Info("Artifacts seeded",
		"target", opts.Target,
		"products", bundle.Summary().Products,
		"clusters", bundle.Summary().Clusters,
	)
}

func seedRedis(ctx context.Context, cfg *config.Config, files *fileRepo.ArtifactRepository, names artifact.Names) error {
	client, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisdb.CloseRedisClient(client)

	repo := redisRepo.NewArtifactRepository(client, cfg.Redis.RedisKeyPrefix)
	for _, name := range []string{names.Similarity, names.Scaler, names.Cluster} {
		data, err := files.Fetch(ctx, name)
		if err != nil {
			return err
		}
		if err := repo.Store(ctx, name, data); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func seedPostgres(ctx context.Context, cfg *config.Config, files *fileRepo.ArtifactRepository, names artifact.Names, bundle *artifact.Bundle) error {
	db, err := database.InitPostgres(cfg)
	if err != nil {
		return err
	}
	defer database.ClosePostgres(db)

	repo := psqlRepo.NewArtifactRepository(db, names)
	if err := repo.Migrate(ctx); err != nil {
		return err
	}
	if err := repo.ReplaceSimilarity(ctx, bundle.Similarity()); err != nil {
		return err
	}
	for _, name := range []string{names.Scaler, names.Cluster} {
		data, err := files.Fetch(ctx, name)
		if err != nil {
			return err
		}
		if err := repo.UpsertArtifact(ctx, name, data); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
