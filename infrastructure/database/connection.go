package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "github.com/nakagami/firebirdsql"
	"github.com/vfg2006/growth-dashboard-api/internal/config"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
	DriverSQLite   = "sqlite"
	DriverFirebird = "firebirdsql"
)

type Conn interface {
	Queryer
	Close() error
	Ping(context.Context) error
	RunInTransaction(context.Context, func(*sql.Tx) error) error
	WithSession(context.Context, func(Queryer) error) error
	StatementBuilder() squirrel.StatementBuilderType
	Driver() string
}

type Connection struct {
	*sql.DB
	driver string
}

// NewConnection abre o pool sem testar a conexão; quem chama decide se a falha de Ping é fatal.
func NewConnection(cfg config.Database) (*Connection, error) {
	switch cfg.Driver {
	case DriverPostgres, DriverPgx, DriverSQLite, DriverFirebird:
	default:
		return nil, fmt.Errorf("driver de banco não suportado: %s", cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.Driver == DriverSQLite {
		// sqlite não lida bem com escrita concorrente
		db.SetMaxOpenConns(1)
	}

	return &Connection{DB: db, driver: cfg.Driver}, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

func (c *Connection) Driver() string {
	return c.driver
}

// StatementBuilder devolve o builder do squirrel com o placeholder do driver
func (c *Connection) StatementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(PlaceholderFor(c.driver))
}

func PlaceholderFor(driver string) squirrel.PlaceholderFormat {
	switch driver {
	case DriverPostgres, DriverPgx:
		return squirrel.Dollar
	default:
		return squirrel.Question
	}
}

// WithSession reserva uma conexão do pool durante fn e a devolve em qualquer caminho
func (c *Connection) WithSession(ctx context.Context, fn func(Queryer) error) error {
	session, err := c.DB.Conn(ctx)
	if err != nil {
		return err
	}
	defer session.Close()

	return fn(session)
}

// RunInTransaction run a query in the transaction
func (c *Connection) RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err := recover(); err != nil {
			_ = tx.Rollback()
			panic(err)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}
