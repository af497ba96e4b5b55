package database

import (
	"database/sql"
	"fmt"
	"time"

	"collegeerp/internal/config"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const (
	connectAttempts = 30
	connectInterval = time.Second
)

// Connect opens the database and blocks until it answers a ping, with a
// bounded retry loop. After the last failed attempt the handle is closed
// and an error returned so the process can fail fast instead of serving
// traffic against a dead store.
func Connect(cfg config.Config, logger *zap.Logger) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	var pingErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		if pingErr = db.Ping(); pingErr == nil {
			logger.Info("database connected",
				zap.String("host", cfg.DBHost), zap.String("dbname", cfg.DBName))
			return db, nil
		}
		logger.Warn("database not ready",
			zap.Int("attempt", attempt), zap.Error(pingErr))
		time.Sleep(connectInterval)
	}

	db.Close()
	return nil, fmt.Errorf("database unreachable after %d attempts: %w", connectAttempts, pingErr)
}
