package infra

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	// MaxOpenConns of 0 keeps the database/sql default.
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

func NewPostgresConnection(cfg PostgresConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC", cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	return db, nil
}

// ApplyMigrations executes every *.sql file of fsys in name order.
// The scripts must be idempotent since they run on each start.
func ApplyMigrations(ctx context.Context, db *gorm.DB, fsys fs.FS) ([]string, error) {
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("ApplyMigrations: %w", err)
	}
	sort.Strings(names)
	for _, name := range names {
		script, e := fs.ReadFile(fsys, name)
		if e != nil {
			return nil, fmt.Errorf("ApplyMigrations: %w", e)
		}
		if e = db.WithContext(ctx).Exec(string(script)).Error; e != nil {
			return nil, fmt.Errorf("ApplyMigrations: %s: %w", name, e)
		}
	}
	return names, nil
}
