package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pharmflow/pharmflow/internal/config"
	"github.com/pharmflow/pharmflow/internal/domain"
	"github.com/pharmflow/pharmflow/internal/domain/booking"
	"github.com/pharmflow/pharmflow/internal/domain/pharmacy"
	"github.com/pharmflow/pharmflow/internal/domain/schedule"
	svc "github.com/pharmflow/pharmflow/internal/domain/service"
)

func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		PrepareStmt:                              true,
		DisableForeignKeyConstraintWhenMigrating: false,
		DisableAutomaticPing:                     false,
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: false,
	}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")
	start := time.Now()

	schemas := []string{"pharmacy", "auth", "audit"} // logical namespace
	for _, schema := range schemas {
		if err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)).Error; err != nil {
			return fmt.Errorf("creating schema %s: %w", schema, err)
		}
	}

	models := []any{
		&domain.User{},
		&domain.AuditLog{},
		&pharmacy.Pharmacy{},
		&svc.Service{},
		&schedule.Window{},
		&booking.Booking{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrating models: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("creating indexes: %w", err)
	}

	log.Info("migrations completed", zap.Duration("duration", time.Since(start)))
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []struct {
		name  string
		query string
	}{
		// The availability engine classifies over a snapshot; two clients can
		// both see a slot as free. This index is what actually serializes
		// them: the second confirmed write fails and the caller re-queries.
		{
			name:  "uniq_bookings_confirmed_slot",
			query: `CREATE UNIQUE INDEX IF NOT EXISTS uniq_bookings_confirmed_slot ON pharmacy.bookings (service_id, scheduled_at) WHERE deleted_at IS NULL AND status = 'confirmed'`,
		},
		{
			name:  "idx_bookings_service_day",
			query: `CREATE INDEX IF NOT EXISTS idx_bookings_service_day ON pharmacy.bookings (service_id, scheduled_at, status) WHERE deleted_at IS NULL`,
		},
		{
			name:  "idx_windows_service",
			query: `CREATE INDEX IF NOT EXISTS idx_windows_service ON pharmacy.schedule_windows (service_id, kind) WHERE deleted_at IS NULL`,
		},
		{
			name:  "idx_services_pharmacy_active",
			query: `CREATE INDEX IF NOT EXISTS idx_services_pharmacy_active ON pharmacy.services (pharmacy_id) WHERE deleted_at IS NULL AND active`,
		},
	}

	for _, idx := range indexes {
		if err := db.Exec(idx.query).Error; err != nil {
			return fmt.Errorf("creating index %s: %w", idx.name, err)
		}
	}

	return nil
}
