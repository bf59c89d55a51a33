// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file contains database bootstrapping helpers for
// SQLite (pure Go driver), schema migrations, and reference-data seeding.
package repo

import (
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/domain"
)

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

// EnableTracing attaches the OpenTelemetry GORM plugin so every query
// becomes a span. Call after OpenSQLite when OTEL is enabled.
func EnableTracing(db *gorm.DB) error {
	return db.Use(tracing.NewPlugin(tracing.WithoutMetrics()))
}

// AutoMigrate creates or updates the full portal schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Team{},
		&domain.User{},
		&domain.Level{},
		&domain.Challenge{},
		&domain.UserChallenge{},
		&domain.Category{},
		&domain.FAQ{},
		&domain.Ticket{},
		&domain.ChatLog{},
		&domain.Idempotency{},
	)
}

// defaultLevels is the seed ladder used when the levels table is empty.
var defaultLevels = []domain.Level{
	{Name: "Iniciante", MinPoints: 0},
	{Name: "Aprendiz", MinPoints: 50},
	{Name: "Técnico", MinPoints: 150},
	{Name: "Especialista", MinPoints: 400},
	{Name: "Mestre", MinPoints: 1000},
}

// SeedLevels inserts the default level ladder if no levels exist yet.
func SeedLevels(db *gorm.DB) error {
	var n int64
	if err := db.Model(&domain.Level{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for i := range defaultLevels {
		lvl := defaultLevels[i]
		lvl.ID = uuid.NewString()
		if err := db.Create(&lvl).Error; err != nil {
			return err
		}
	}
	return nil
}
