package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/nikolayk812/storefront/migrations"
)

const migrationsTable = "storefront_schema_migrations"

// Migrate applies (up) or reverts (down) all embedded migrations.
func Migrate(databaseURL string, up bool) error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("iofs.New: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, migrateURL(databaseURL))
	if err != nil {
		return fmt.Errorf("migrate.NewWithSourceInstance: %w", err)
	}
	defer m.Close()

	if up {
		err = m.Up()
	} else {
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

// migrateURL rewrites a libpq URL to the scheme of the pgx/v5 migrate driver.
func migrateURL(databaseURL string) string {
	rest, found := strings.CutPrefix(databaseURL, "postgres://")
	if !found {
		rest, found = strings.CutPrefix(databaseURL, "postgresql://")
	}
	if !found {
		return databaseURL
	}

	sep := "?"
	if strings.Contains(rest, "?") {
		sep = "&"
	}

	return "pgx5://" + rest + sep + "x-migrations-table=" + migrationsTable
}
