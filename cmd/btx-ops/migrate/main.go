package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap"

	"github.com/glipgg/btx-ops/pkg/config"
	"github.com/glipgg/btx-ops/pkg/migrations/opsdb"
	"github.com/glipgg/btx-ops/pkg/pgutil"
	mghelper "github.com/glipgg/btx-ops/pkg/pgutil/migrations"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: migrate [-config path] <%s>\n", strings.Join(mghelper.Commands, "|"))
	flag.PrintDefaults()
}

func main() {
	cfgPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := config.LoadEnvFiles(); err != nil {
		log.Fatalf("error loading env files: %s", err)
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("error reading configuration file: %s", err)
	}
	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("error creating logger: %s", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	db, err := pgutil.ConnectDB(ctx, &cfg.Database, logger)
	if err != nil {
		log.Fatalf("error connecting to database: %s", err)
	}
	defer func() { _ = db.Close() }()

	migrator := migrate.NewMigrator(db, opsdb.Migrations)
	if err := mghelper.RunMigrations(ctx, migrator, logger.Named("migrate"), flag.Arg(0)); err != nil {
		logger.Error("Migration failed", zap.Error(err))
		os.Exit(1)
	}
}
