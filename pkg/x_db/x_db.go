// Package x_db opens gorm connections for the supported dialects and
// routes gorm's own logging through zerolog.
package x_db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

//---------------------
// Dialects
//---------------------

type DbType string

const (
	DbSqlite   DbType = "sqlite"
	DbPostgres DbType = "postgres"
)

//---------------------
// Config
//---------------------

// Config describes one database connection.
type Config struct {
	Type     DbType
	DSN      string
	LogLevel string // silent | error | warn | info
}

// Dialector returns the gorm dialector for cfg.
func Dialector(cfg Config) (gorm.Dialector, error) {
	switch cfg.Type {
	case DbSqlite, "":
		return sqlite.Open(cfg.DSN), nil
	case DbPostgres:
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported db type %q", cfg.Type)
	}
}

// Open connects using cfg. Gorm log records go to zl.
func Open(cfg Config, zl zerolog.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newLogAdapter(zl, ParseLogLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Type, err)
	}

	// every new sqlite connection to :memory: would see an empty database
	if isMemory(cfg) {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// ParseLogLevel maps a level name to gorm's logger levels.
func ParseLogLevel(s string) logger.LogLevel {
	switch strings.ToLower(s) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info", "debug":
		return logger.Info
	default:
		return logger.Warn
	}
}

func isMemory(cfg Config) bool {
	return cfg.Type != DbPostgres &&
		(strings.Contains(cfg.DSN, ":memory:") || strings.Contains(cfg.DSN, "mode=memory"))
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
