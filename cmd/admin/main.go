package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/angelmondragon/weddingplanner-backend/internal/clients"
	"github.com/angelmondragon/weddingplanner-backend/internal/leads"
	"github.com/angelmondragon/weddingplanner-backend/internal/principals"
	"github.com/angelmondragon/weddingplanner-backend/pkg/config"
	"github.com/angelmondragon/weddingplanner-backend/pkg/db"
	"github.com/angelmondragon/weddingplanner-backend/pkg/enums"
	"github.com/angelmondragon/weddingplanner-backend/pkg/logger"
	"github.com/angelmondragon/weddingplanner-backend/pkg/migrate"
	"github.com/angelmondragon/weddingplanner-backend/pkg/tenancy"
)

type flags struct {
	cmd         string
	companyID   string
	userID      string
	clientID    string
	leadID      string
	input       string
	externalID  string
	email       string
	firstName   string
	lastName    string
	metricsFile string
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "admin"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	var f flags
	flag.StringVar(&f.cmd, "cmd", "", "command: create-client|delete-client|convert-lead|seed-stages|resolve-user|health")
	flag.StringVar(&f.companyID, "company", "", "company id the command acts for")
	flag.StringVar(&f.userID, "user", "", "acting user id")
	flag.StringVar(&f.clientID, "client", "", "client id (delete-client)")
	flag.StringVar(&f.leadID, "lead", "", "lead id (convert-lead)")
	flag.StringVar(&f.input, "input", "", "JSON file with the client request or conversion overrides")
	flag.StringVar(&f.externalID, "external-id", "", "identity provider subject (resolve-user)")
	flag.StringVar(&f.email, "email", "", "identity email (resolve-user)")
	flag.StringVar(&f.firstName, "first-name", "", "identity first name (resolve-user)")
	flag.StringVar(&f.lastName, "last-name", "", "identity last name (resolve-user)")
	flag.StringVar(&f.metricsFile, "metrics-file", "", "write lifecycle metrics to this textfile on exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "admin",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env": cfg.App.Env,
		"cmd": f.cmd,
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

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	a, err := newApp(ctx, cfg, logg, dbClient)
	if err != nil {
		logg.Error(ctx, "failed to wire services", err)
		os.Exit(1)
	}
	defer func() {
		if err := a.close(); err != nil {
			logg.Error(ctx, "error closing resources", err)
		}
	}()

	out, err := run(ctx, a, f)
	if mErr := a.writeMetrics(f.metricsFile); mErr != nil {
		logg.Error(ctx, "failed to write metrics", mErr)
	}
	if err != nil {
		logg.Error(ctx, "command failed", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode result: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, a *app, f flags) (any, error) {
	switch f.cmd {
	case "health":
		return a.health(ctx)
	case "resolve-user":
		res, err := a.principals.Resolve(ctx, principals.Identity{
			ExternalID: f.externalID,
			Email:      f.email,
			FirstName:  f.firstName,
			LastName:   f.lastName,
		})
		if err != nil {
			return nil, err
		}
		profile, err := a.principals.Describe(ctx, res.UserID)
		if err != nil {
			return nil, err
		}
		return map[string]any{"resolution": res, "profile": profile}, nil
	case "":
		return nil, errors.New("missing -cmd")
	}

	p, err := adminPrincipal(f)
	if err != nil {
		return nil, err
	}

	switch f.cmd {
	case "create-client":
		var input clients.CreateClientInput
		if err := readInput(f.input, &input); err != nil {
			return nil, err
		}
		return a.clients.Create(ctx, p, input)
	case "delete-client":
		clientID, err := parseID("client", f.clientID)
		if err != nil {
			return nil, err
		}
		return a.clients.Delete(ctx, p, clientID)
	case "convert-lead":
		leadID, err := parseID("lead", f.leadID)
		if err != nil {
			return nil, err
		}
		var overrides leads.ConvertOverrides
		if f.input != "" {
			if err := readInput(f.input, &overrides); err != nil {
				return nil, err
			}
		}
		return a.leads.ConvertToClient(ctx, p, leadID, overrides)
	case "seed-stages":
		return a.leads.SeedDefaultStages(ctx, p)
	default:
		return nil, fmt.Errorf("unknown -cmd value %q", f.cmd)
	}
}

// adminPrincipal acts as a company admin of the company named by -company.
func adminPrincipal(f flags) (tenancy.Principal, error) {
	userID, err := parseID("user", f.userID)
	if err != nil {
		return tenancy.Principal{}, err
	}
	companyID, err := parseID("company", f.companyID)
	if err != nil {
		return tenancy.Principal{}, err
	}
	return tenancy.Principal{UserID: userID, CompanyID: &companyID, Role: enums.RoleCompanyAdmin}, nil
}

func parseID(name, raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, fmt.Errorf("missing -%s", name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid -%s: %w", name, err)
	}
	return id, nil
}

func readInput(path string, dst any) error {
	if path == "" {
		return errors.New("missing -input")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}
	return nil
}
