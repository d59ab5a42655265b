package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/weddingplanner-backend/pkg/config"
	"github.com/angelmondragon/weddingplanner-backend/pkg/db"
	"github.com/angelmondragon/weddingplanner-backend/pkg/db/models"
	"github.com/angelmondragon/weddingplanner-backend/pkg/logger"
	"github.com/angelmondragon/weddingplanner-backend/pkg/migrate"
)

type options struct {
	cmd     string
	dir     string
	name    string
	version string
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "migrate"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	var opts options
	flag.StringVar(&opts.cmd, "cmd", "up", "migration command: up|up-by-one|down|redo|status|version|to|create|validate")
	flag.StringVar(&opts.dir, "dir", migrate.DefaultDir, "goose migrations directory")
	flag.StringVar(&opts.name, "name", "", "migration name (create)")
	flag.StringVar(&opts.version, "version", "", "target version YYYYMMDDHHMMSS (to)")
	flag.Parse()

	// create and validate work on files only
	switch opts.cmd {
	case "create":
		path, err := migrate.CreateSQLMigration(opts.dir, opts.name, time.Now())
		exitOn(err, "create migration")
		fmt.Println("created migration:", path)
		return
	case "validate":
		exitOn(validate(opts.dir), "validate migrations")
		fmt.Println("migration validation passed")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}
	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env": cfg.App.Env,
		"cmd": opts.cmd,
		"dir": opts.dir,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	if err := run(ctx, dbClient, opts); err != nil {
		logg.Error(ctx, "migration failed", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logg.Info(ctx, "migration finished")
}

func run(ctx context.Context, client *db.Client, opts options) error {
	if client.Dialect() == db.DialectSQLite {
		// goose files are Postgres only; sqlite dev databases follow the models
		if opts.cmd != "up" {
			return fmt.Errorf("command %q is not available on sqlite", opts.cmd)
		}
		return client.DB().WithContext(ctx).AutoMigrate(models.All()...)
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}
	if opts.cmd == "to" {
		if opts.version == "" {
			return errors.New("missing -version for to")
		}
		return migrate.MigrateToVersion(ctx, sqlDB, opts.dir, opts.version)
	}
	return migrate.Run(ctx, sqlDB, opts.dir, opts.cmd)
}

func validate(dir string) error {
	if err := migrate.ValidateDir(dir); err != nil {
		return err
	}
	missing, err := migrate.UnprotectedTenantTables(dir)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("tenant tables without row level security: %s", strings.Join(missing, ", "))
	}
	return nil
}

func exitOn(err error, action string) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", action, err)
	os.Exit(1)
}
