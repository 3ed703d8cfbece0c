package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/fanstats/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupDatabase writes the config template when missing, then initializes the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	config, created := r.loadOrCreateConfig(configPath)

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := shared.OpenDatabase(config.Database)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}
	defer db.Close()

	versions, err := shared.AppliedVersions(db)
	if err != nil {
		return fmt.Errorf("failed to read applied migrations: %w", err)
	}

	r.logger.Infof("setup complete for database: %v", config.Database.Path)

	r.writePlainHeader("Setup complete")
	if created {
		r.writePlain("Config file created: %s\n", configPath)
	} else {
		r.writePlain("Config file: %s\n", configPath)
	}
	r.writePlain("Database: %s\n", config.Database.Path)
	r.writePlain("Applied migrations: %v\n", versions)
	return nil
}

// SetupRollback reverts the most recent migration of the configured database.
func (r *Runner) SetupRollback(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			return err
		}
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := shared.RollbackMigration(db); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}

	versions, err := shared.AppliedVersions(db)
	if err != nil {
		return fmt.Errorf("failed to read applied migrations: %w", err)
	}

	r.logger.Info("migration rolled back", "path", config.Database.Path)
	r.writePlain("✓ Rolled back, applied migrations: %v\n", versions)
	return nil
}

// loadOrCreateConfig reads configPath, creating it from the template first when it does not exist.
// Any failure falls back to defaults.
func (r *Runner) loadOrCreateConfig(configPath string) (*shared.Config, bool) {
	if _, err := os.Stat(configPath); err == nil {
		config, err := shared.LoadConfig(configPath)
		if err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			return shared.DefaultConfig(), false
		}
		return config, false
	}

	r.logger.Info("config file not found, creating from template", "path", configPath)
	if err := shared.CreateConfigFile(configPath); err != nil {
		r.logger.Warn("failed to create config file, using defaults", "error", err)
		return shared.DefaultConfig(), false
	}

	r.logger.Info("config file created", "path", configPath)
	config, err := shared.LoadConfig(configPath)
	if err != nil {
		r.logger.Warn("failed to load created config, using defaults", "error", err)
		return shared.DefaultConfig(), true
	}
	return config, true
}
