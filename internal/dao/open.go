package dao

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/solodesk/solodesk/internal/config"
)

// Open builds a GORM connection for the configured driver and applies the
// pool settings.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case "mysql":
		db, err = gorm.Open(mysql.Open(cfg.DSN), gcfg)
	case "sqlite", "":
		db, err = gorm.Open(sqlite.Open(cfg.DSN), gcfg)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifeSec > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifeSec) * time.Second)
	}
	return db, nil
}

// Ping retries Ping on the underlying *sql.DB of a *gorm.DB.
func Ping(gdb *gorm.DB, attempts int, interval time.Duration) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	for i := 0; i < attempts; i++ {
		if err := sqlDB.Ping(); err != nil {
			time.Sleep(interval)
			continue
		}
		return nil
	}
	return sqlDB.Ping()
}
