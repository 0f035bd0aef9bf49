package postgres

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migrate aplica las migraciones pendientes del directorio dir sobre la base
// indicada por dsn. Sin migraciones pendientes no es error.
func Migrate(dir, dsn string) error {
	u, err := url.Parse(dsn)
	if err != nil {
		return fmt.Errorf("parse DSN: %w", err)
	}
	// golang-migrate registra el driver de pgx/v5 bajo el scheme pgx5.
	u.Scheme = "pgx5"

	m, err := migrate.New("file://"+dir, u.String())
	if err != nil {
		return fmt.Errorf("abrir migraciones: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("aplicar migraciones: %w", err)
	}
	return nil
}
