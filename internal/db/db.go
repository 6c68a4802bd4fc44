package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/edu-crm/internal/config"
	"github.com/BruksfildServices01/edu-crm/internal/models"
)

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.IsProduction() {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate cria/atualiza as tabelas; units primeiro por ser a raiz do tenant.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Unit{},
		&models.User{},
		&models.Lead{},
		&models.Interaction{},
		&models.Appointment{},
		&models.Enrollment{},
		&models.Note{},
		&models.Event{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	// linhas antigas sem versão entram no CAS a partir de 1
	if err := db.Exec(`
        UPDATE leads
        SET version = 1
        WHERE version IS NULL OR version < 1
    `).Error; err != nil {
		return fmt.Errorf("failed to backfill lead versions: %w", err)
	}

	return nil
}
