package db

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func NewDB(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	gormLog := logger.Default.LogMode(logger.Warn)
	if cfg.IsDev() {
		gormLog = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	log.Info().
		Int("max_open_conns", cfg.DBMaxOpenConns).
		Int("max_idle_conns", cfg.DBMaxIdleConns).
		Msg("connected to database")

	return db, nil
}

// Migrate creates the schema. On PostgreSQL it also installs the exclusion
// constraint that keeps live appointments of a professional from overlapping.
func Migrate(db *gorm.DB, defaultTimezone string) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
			return fmt.Errorf("enable btree_gist: %w", err)
		}
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(appointmentNoOverlap).Error; err != nil {
			return fmt.Errorf("appointment exclusion constraint: %w", err)
		}
	}

	return db.Exec(
		`UPDATE tenants SET timezone = ? WHERE timezone IS NULL OR timezone = ''`,
		defaultTimezone,
	).Error
}

const appointmentNoOverlap = `
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint WHERE conname = 'ex_appt_professional_no_overlap'
	) THEN
		ALTER TABLE appointments
			ADD CONSTRAINT ex_appt_professional_no_overlap
			EXCLUDE USING gist (
				tenant_id WITH =,
				professional_id WITH =,
				tstzrange(start_at, end_at, '[)') WITH &&
			)
			WHERE (status <> 'CANCELED');
	END IF;
END
$$;`
