package database

import (
	"fmt"

	"ripple/internal/config"
	"ripple/internal/middleware"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// readDB is an optional read-replica connection. Nil when no replica is
// configured; callers fall back to the primary.
var readDB *gorm.DB

// GetReadDB returns the read-replica connection, or nil when none is
// configured.
func GetReadDB() *gorm.DB {
	return readDB
}

// SetReadDB overrides the read replica. Intended for tests.
func SetReadDB(db *gorm.DB) {
	readDB = db
}

func connectReadReplica(cfg *config.Config) {
	if cfg.DBReadHost == "" {
		readDB = nil
		return
	}

	sslMode := cfg.DBSSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBReadHost,
		cfg.DBReadPort,
		cfg.DBReadUser,
		cfg.DBReadPassword,
		cfg.DBName,
		sslMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newGormLogger(),
	})
	if err != nil {
		middleware.Logger.Warn("Read replica unavailable, using primary for reads")
		readDB = nil
		return
	}

	middleware.Logger.Info("Read replica connected")
	readDB = db
}
