package users

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DBConfig holds PostgreSQL connection parameters.
type DBConfig struct {
	User     string
	Password string
	Database string
	Host     string
	Port     int
}

// DBConfigFromEnv reads POSTGRES_USER, POSTGRES_PASSWORD, POSTGRES_DB,
// POSTGRES_HOST and POSTGRES_PORT, falling back to the defaults used by
// the compose stack.
func DBConfigFromEnv(lookup func(string) (string, bool)) (DBConfig, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return def
	}

	port, err := strconv.Atoi(get("POSTGRES_PORT", "5432"))
	if err != nil {
		return DBConfig{}, fmt.Errorf("invalid POSTGRES_PORT: %w", err)
	}

	return DBConfig{
		User:     get("POSTGRES_USER", "appuser"),
		Password: get("POSTGRES_PASSWORD", "apppass"),
		Database: get("POSTGRES_DB", "appdb"),
		Host:     get("POSTGRES_HOST", "db"),
		Port:     port,
	}, nil
}

// ConnString renders the config as a postgres:// URL.
func (c DBConfig) ConnString() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Database,
	}
	return u.String()
}

// PostgresStore is a Store backed by a pgx connection pool.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore connects to PostgreSQL and verifies the connection.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{db: pool}, nil
}

func (s *PostgresStore) Close() {
	s.db.Close()
}

func (s *PostgresStore) Init(ctx context.Context) error {
	query := `
    CREATE TABLE IF NOT EXISTS users (
        id SERIAL PRIMARY KEY,
        name TEXT NOT NULL,
        created_at TIMESTAMPTZ NOT NULL DEFAULT now()
    );
    `
	_, err := s.db.Exec(ctx, query)
	return err
}

func (s *PostgresStore) List(ctx context.Context) ([]User, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name, created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *PostgresStore) Create(ctx context.Context, name string) (User, error) {
	if err := validateName(name); err != nil {
		return User{}, err
	}

	var u User
	err := s.db.QueryRow(ctx,
		`INSERT INTO users (name) VALUES ($1) RETURNING id, name, created_at`, name,
	).Scan(&u.ID, &u.Name, &u.CreatedAt)
	if err != nil {
		return User{}, err
	}
	return u, nil
}
