package cmd

import (
	"context"
	"errors"
	"fmt"

	"sitesync-backend/config"
	"sitesync-backend/models"
	"sitesync-backend/services"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the schema and seed the work unit catalog",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		if cfg.DatabaseURL == "" {
			return errors.New("DB_URL is required")
		}
		db, err := config.ConnectDB(cfg.DatabaseURL, viper.GetBool("debug"))
		if err != nil {
			return err
		}

		svc := services.New(db, services.Options{Logger: logger})
		return migrate(cmd.Context(), db, svc, logger)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func migrate(ctx context.Context, db *gorm.DB, svc *services.Services, logger *zap.Logger) error {
	if err := models.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	n, err := svc.Catalog.Seed(ctx)
	if err != nil {
		return fmt.Errorf("seeding catalog: %w", err)
	}
	logger.Info("schema ready", zap.Int("catalog_units_added", n))
	return nil
}
