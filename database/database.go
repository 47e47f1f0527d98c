package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"kidspace/config"
	"kidspace/logger"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Dialector builds the GORM dialector for the configured driver
func Dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverSQLite, "":
		dsn := cfg.DSN
		if dsn == "" {
			if dir := filepath.Dir(cfg.Path); dir != "." {
				if err := os.MkdirAll(dir, os.ModePerm); err != nil {
					return nil, fmt.Errorf("failed to create database directory: %w", err)
				}
			}
			dsn = SQLiteDSN(cfg.Path)
		}
		return sqlite.Open(dsn), nil

	case DriverPostgres:
		dsn := cfg.DSN
		if dsn == "" {
			port := cfg.Port
			if port == "" {
				port = "5432"
			}
			dsn = fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=disable TimeZone=UTC",
				cfg.Host, port, cfg.User, cfg.Name, cfg.Password)
		}
		return postgres.Open(dsn), nil

	case DriverMySQL:
		dsn := cfg.DSN
		if dsn == "" {
			port := cfg.Port
			if port == "" {
				port = "3306"
			}
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
				cfg.User, cfg.Password, cfg.Host, port, cfg.Name)
		}
		return mysql.Open(dsn), nil
	}

	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// SQLiteDSN turns a file path into a DSN with foreign keys enforced
func SQLiteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path + "&_pragma=foreign_keys(1)"
	}
	return path + "?_pragma=foreign_keys(1)"
}

// Open connects to the configured store
func Open(cfg config.DatabaseConfig, l *logger.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := OpenWithDialector(dialector, l)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	if cfg.Driver == DriverSQLite || cfg.Driver == "" {
		// one writer; also keeps in-memory databases alive
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	return db, nil
}

// OpenWithDialector opens GORM on an already built dialector
func OpenWithDialector(dialector gorm.Dialector, l *logger.Logger) (*gorm.DB, error) {
	gormLog := gormlogger.Default.LogMode(gormlogger.Silent)
	if l != nil {
		gormLog = gormlogger.New(l, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  l.GormLogLevel(),
			IgnoreRecordNotFoundError: true,
		})
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	return db, nil
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
