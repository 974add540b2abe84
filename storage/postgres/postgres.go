package postgres

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"taxifleet/config"
	"taxifleet/pkg/logger"
	"taxifleet/storage"
)

// DB is the subset of *pgxpool.Pool the repositories use.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Store struct {
	pool *pgxpool.Pool
	db   DB
	log  logger.ILogger
}

// New connects to Postgres and applies pending migrations.
func New(ctx context.Context, cfg config.Config, log logger.ILogger) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.PostgresURL())
	if err != nil {
		log.Error("error while parsing Postgres config", logger.Error(err))
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Error("failed to connect Postgres", logger.Error(err))
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		log.Error("failed to ping Postgres", logger.Error(err))
		pool.Close()
		return nil, err
	}

	if err := Migrate(cfg, log); err != nil {
		pool.Close()
		return nil, err
	}

	log.Info("Postgres connected", logger.String("host", cfg.PostgresHost), logger.String("db", cfg.PostgresDB))

	return &Store{
		pool: pool,
		db:   pool,
		log:  log,
	}, nil
}

// NewWithDB wraps an existing connection. Migrations are not run.
func NewWithDB(db DB, log logger.ILogger) *Store {
	return &Store{db: db, log: log}
}

// Migrate applies every pending up migration from cfg.MigrationsPath.
func Migrate(cfg config.Config, log logger.ILogger) error {
	m, err := migrate.New("file://"+migrationsPath(cfg.MigrationsPath), cfg.PostgresURL())
	if err != nil {
		log.Error("migration init error", logger.Error(err))
		return err
	}
	defer m.Close()

	if err = m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("no migrations to apply")
			return nil
		}
		log.Error("migration up error", logger.Error(err))
		return err
	}

	version, _, _ := m.Version()
	log.Info("migrations applied", logger.Any("version", version))
	return nil
}

func migrationsPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	cwd, _ := os.Getwd()
	return filepath.Join(cwd, path)
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) GetPool() *pgxpool.Pool {
	return s.pool
}

func (s *Store) Manufacturer() storage.IManufacturerStorage {
	return NewManufacturerRepo(s.db, s.log)
}
func (s *Store) Car() storage.ICarStorage       { return NewCarRepo(s.db, s.log) }
func (s *Store) Driver() storage.IDriverStorage { return NewDriverRepo(s.db, s.log) }
