package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
)

// Open connects with a registered driver ("mysql" or "sqlite3") and pings.
// The caller imports the driver package.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, Dialect, error) {
	d, err := ParseDialect(driver)
	if err != nil {
		return nil, "", err
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, "", fmt.Errorf("sql.Open: %w", err)
	}
	if d == SQLite {
		// one connection: in-memory databases are per connection
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("db ping: %w", err)
	}
	return db, d, nil
}

// CreateSchema creates the employee table before reviews so the foreign key
// has a target.
func CreateSchema(ctx context.Context, e *EmployeeStore, r *ReviewMapper) error {
	if err := e.CreateTable(ctx); err != nil {
		return err
	}
	return r.CreateTable(ctx)
}
