package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/wishlistapp/accounts/internal/infrastructure/config"
	"github.com/wishlistapp/accounts/internal/infrastructure/db/mongo"
	"github.com/wishlistapp/accounts/internal/infrastructure/db/postgres"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Prepare the account store schema",
		Long: `Apply the PostgreSQL migrations or create the MongoDB indexes,
depending on STORE_DRIVER.`,
		RunE: runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx)
	if err != nil {
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		cmd.Println("Connecting to database...")
		db, err := postgres.Open(ctx, cfg.Postgres.DSN)
		if err != nil {
			return oops.Code("DB_CONNECT_FAILED").With("operation", "connect to database").Wrap(err)
		}
		defer db.Close()

		cmd.Println("Running migrations...")
		if err := postgres.Migrate(ctx, db); err != nil {
			return oops.Code("MIGRATION_FAILED").With("operation", "run migrations").Wrap(err)
		}

	case config.DriverMongo:
		cmd.Println("Connecting to database...")
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return oops.Code("DB_CONNECT_FAILED").With("operation", "connect to database").Wrap(err)
		}
		defer func() { _ = client.Disconnect(ctx) }()

		cmd.Println("Creating indexes...")
		if err := ensureMongoIndexes(ctx, db); err != nil {
			return err
		}

	default:
		cmd.Printf("Store driver %q has no schema to migrate\n", cfg.StoreDriver)
		return nil
	}

	cmd.Println("Migrations completed successfully")
	return nil
}
