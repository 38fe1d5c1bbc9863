package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vladimiradmaev/recipebox/internal/config"
	"github.com/vladimiradmaev/recipebox/internal/database/migrations"
	"github.com/vladimiradmaev/recipebox/internal/domain"
	"github.com/vladimiradmaev/recipebox/internal/logger"
)

// Models lists the tables managed by AutoMigrate
func Models() []any {
	return []any{
		&domain.User{},
		&domain.Ingredient{},
		&domain.Recipe{},
		&domain.RecipeIngredient{},
		&domain.NutritionInformation{},
	}
}

func NewPostgresDB(cfg config.DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Tables first, then the SQL migrations that index them
	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	migrator := migrations.NewMigrator()
	if err := migrator.LoadSQL(migrations.SQLFiles()); err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}
	if err := migrator.Run(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Database connection established and migrations completed",
		"host", cfg.Host,
		"database", cfg.DBName)
	return db, nil
}
