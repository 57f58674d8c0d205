package db

import (
	"context"
	"time"

	"tdr-registry/internal/domain/application"
	"tdr-registry/internal/domain/drc"
	"tdr-registry/internal/domain/event"
	"tdr-registry/internal/domain/identity"
	"tdr-registry/internal/domain/principal"
	"tdr-registry/internal/domain/transfer"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func OpenGorm(dsn string) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn))
}

// OpenGormWithDialector opens, tunes the pool and pings.
func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Models lists every table the service owns or reads.
func Models() []any {
	return []any{
		&drc.DRC{},
		&drc.Owner{},
		&transfer.Transfer{},
		&identity.Entry{},
		&identity.OfficerRole{},
		&principal.Principal{},
		&event.Event{},
		&application.Application{},
		&application.Applicant{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// Pinger adapts the pool to the health check.
type Pinger struct{ DB *gorm.DB }

func (p Pinger) Name() string { return "mysql" }

func (p Pinger) Ping(ctx context.Context) error {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
