package config

import (
	"fmt"
	"time"
)

// PostgresConfig holds the database connection settings.
type PostgresConfig struct {
	Host            string `yaml:"host" env:"LM_POSTGRES_HOST" env-default:"localhost"`
	Port            int    `yaml:"port" env:"LM_POSTGRES_PORT" env-default:"5432"`
	User            string `yaml:"user" env:"LM_POSTGRES_USER" env-default:"postgres"`
	Password        string `yaml:"password" env:"LM_POSTGRES_PASSWORD" env-default:"postgres"`
	Database        string `yaml:"database" env:"LM_POSTGRES_DB" env-default:"langmaster"`
	MinConn         int    `yaml:"min_conn" env:"LM_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn         int    `yaml:"max_conn" env:"LM_POSTGRES_MAX_CONN" env-default:"10"`
	QueryTimeoutSec int    `yaml:"query_timeout" env:"LM_POSTGRES_QUERY_TIMEOUT" env-default:"5"`
}

// GetDSN returns the PostgreSQL connection string.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Database)
}

// GetConnectionURL returns the URL-style connection string used by migrations.
func (p *PostgresConfig) GetConnectionURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Database)
}

// GetQueryTimeout returns the per-query timeout as a time.Duration.
func (p *PostgresConfig) GetQueryTimeout() time.Duration {
	return time.Duration(p.QueryTimeoutSec) * time.Second
}
