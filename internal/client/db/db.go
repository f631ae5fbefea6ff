// Package db opens the local SQLite database, applies migrations and wires
// the repository set.
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/arefyev/sealmsg/internal/client/migrations"
	"github.com/arefyev/sealmsg/internal/client/repositories/assets"
	"github.com/arefyev/sealmsg/internal/client/repositories/conversations"
	"github.com/arefyev/sealmsg/internal/client/repositories/messages"
	"github.com/arefyev/sealmsg/internal/client/repositories/metadata"
	"github.com/arefyev/sealmsg/internal/client/repositories/uploads"
)

// Repositories bundles the persistence layer over one database handle.
type Repositories struct {
	Assets        assets.Repository
	Uploads       uploads.Repository
	Messages      messages.Repository
	Conversations conversations.Repository
	Metadata      metadata.Repository

	DB *sql.DB
}

// RunMigrations applies the embedded schema migrations. Safe to call on
// every startup; applied versions are skipped.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// InitDatabase opens the database at dsn, migrates it and returns the wired
// repository set. The caller owns the returned DB handle.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Repositories{
		Assets:        assets.NewSQLiteRepository(db),
		Uploads:       uploads.NewSQLiteRepository(db),
		Messages:      messages.NewSQLiteRepository(db),
		Conversations: conversations.NewSQLiteRepository(db),
		Metadata:      metadata.NewSQLiteRepository(db),
		DB:            db,
	}, nil
}
