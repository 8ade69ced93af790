package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lttslabs/etlctl/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup initializes the config file and the local credential store.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}

	r.logger.Info("initializing credential store", "path", config.Credentials.Path)

	db, err := shared.NewDatabase(config.Credentials.Path)
	if err != nil {
		return fmt.Errorf("failed to create credential store: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Credentials.MaxOpenConns, config.Credentials.MaxIdleConns)

	r.logger.Info("running credential store migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	r.logger.Infof("setup complete for credential store: %v", config.Credentials.Path)

	return r.writePlain("✓ Setup complete\nConfig: %s\nCredential store: %s\n", configPath, config.Credentials.Path)
}
