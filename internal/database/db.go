package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Config carries everything Open needs to reach MySQL. Pool knobs are
// environment-driven so deployments can size them per instance; zero
// values keep the driver defaults.
type Config struct {
	User string
	Pass string
	Host string
	Port string
	Name string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// dsn builds the driver connection string. parseTime maps DATETIME
// columns onto time.Time and loc=UTC keeps every timestamp in UTC.
func (c Config) dsn() string {
	auth := c.User
	if c.Pass != "" {
		auth = c.User + ":" + c.Pass
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, c.Host, c.Port, c.Name)
}

// Open connects to MySQL, applies the pool settings and verifies the
// connection with a bounded ping before returning.
func Open(c Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", c.dsn())
	if err != nil {
		return nil, err
	}

	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(c.ConnMaxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
