package infra_pg_init

import (
	"context"
	_ "embed"
	"fmt"
	"log"

	"github.com/humanbelnik/flickswipe/internal/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schema string

func MustEstablishConn(cfg config.Postgres) *sqlx.DB {
	db, err := sqlx.Connect("postgres", cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}

	if err := Migrate(context.Background(), db); err != nil {
		log.Fatal(err)
	}

	return db
}

// Migrate applies the schema. Every statement in it is idempotent.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
