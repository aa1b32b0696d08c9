package storage

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nanihealth/clinic-management/internal"
	appointmentDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/appointment"
	financeDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/finance"
	medicalrecordDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/medicalrecord"
	patientDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/patient"
	roleDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/role"
	staffDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/staff"
)

// Open connects to the configured storage engine and configures the
// connection pool. The store owns this handle exclusively; nothing else
// crosses the boundary with raw SQL except the reporting queries, which
// share the same underlying *sql.DB.
func Open(cfg internal.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case internal.DriverPostgres:
		dialector = postgres.Open(cfg.Source)
	default:
		dialector = sqlite.Open(sqliteDSN(cfg))
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, internal.NewStorageError("failed to open storage engine", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, internal.NewStorageError("failed to access connection pool", err)
	}

	if cfg.Driver == internal.DriverSQLite {
		// a single writer connection keeps sqlite writes serialized
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, internal.NewStorageError("failed to ping storage engine", err)
	}

	return db, nil
}

// sqliteDSN appends the busy-timeout and journal pragmas unless the caller
// already provided query parameters.
func sqliteDSN(cfg internal.DatabaseConfig) string {
	if strings.Contains(cfg.Source, "?") {
		return cfg.Source
	}
	busy := cfg.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}
	return fmt.Sprintf("%s?_busy_timeout=%d&_journal_mode=WAL&_foreign_keys=on",
		cfg.Source, busy.Milliseconds())
}

// AutoMigrate ensures all tables exist. Additive create-if-missing only;
// incompatible existing schemas are not rewritten.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&roleDatamodel.Role{},
		&staffDatamodel.Staff{},
		&patientDatamodel.Patient{},
		&appointmentDatamodel.Appointment{},
		&medicalrecordDatamodel.MedicalRecord{},
		&financeDatamodel.FinancialRecord{},
	)
}

// SeedRoles inserts the four default roles, keyed by unique name. Safe to
// run at every startup.
func SeedRoles(db *gorm.DB) error {
	for _, r := range roleDatamodel.DefaultRoles() {
		var count int64
		if err := db.Model(&roleDatamodel.Role{}).Where("name = ?", r.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&r).Error; err != nil {
			return err
		}
	}
	return nil
}

// WrapWriteError normalizes repository errors for the write path: AppErrors
// pass through, lock-timeout errors become StorageUnavailable, anything
// else is internal.
func WrapWriteError(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := internal.IsAppError(err); ok {
		return appErr
	}
	if IsBusy(err) {
		return internal.ErrStorageUnavailable.WithCause(err)
	}
	return internal.NewInternalError(message, err)
}

// IsBusy reports whether the error means the engine could not take the
// write lock within the busy timeout.
func IsBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "SQLITE_BUSY")
}
