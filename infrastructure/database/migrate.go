package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/growth-dashboard-api/internal/config"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

var ErrMigrationsUnsupported = errors.New("migrações não suportadas para este driver")

// RunMigrations cria o esquema de clientes, contratos e pagamentos.
// O banco Firebird de produção já existe e não é migrado por aqui.
func RunMigrations(cfg config.Database) error {
	var dir string
	switch cfg.Driver {
	case DriverPostgres, DriverPgx:
		dir = "migrations/postgres"
	case DriverSQLite:
		dir = "migrations/sqlite"
	default:
		return fmt.Errorf("%w: %s", ErrMigrationsUnsupported, cfg.Driver)
	}

	// Conexão separada para não interferir no pool principal
	migrateDB, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return fmt.Errorf("erro ao abrir banco para migração: %w", err)
	}
	defer migrateDB.Close()

	var driver migratedb.Driver
	if dir == "migrations/sqlite" {
		driver, err = sqlite.WithInstance(migrateDB, &sqlite.Config{})
	} else {
		driver, err = postgres.WithInstance(migrateDB, &postgres.Config{})
	}
	if err != nil {
		return fmt.Errorf("erro ao criar driver de migração: %w", err)
	}

	source, err := iofs.New(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("erro ao abrir migrações embutidas: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, cfg.Driver, driver)
	if err != nil {
		return fmt.Errorf("erro ao criar instância de migração: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("erro ao executar migrações: %w", err)
	}

	version, dirty, _ := m.Version()
	logrus.WithFields(logrus.Fields{
		"driver":  cfg.Driver,
		"version": version,
		"dirty":   dirty,
	}).Info("Migrações aplicadas")

	return nil
}
