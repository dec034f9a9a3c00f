package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"k8s.io/klog"

	"github.com/ledgerfeed/ledgerfeed/pkg/config"
)

// NewDB connects to postgres, creating the database first when it does not
// exist yet.
func NewDB(database string, secrets *config.Secrets) (*bun.DB, error) {
	var pgconn *pgdriver.Connector

	// bypass creating of db if database_url is set because we are likely
	// running on a managed platform then
	if secrets.DatabaseURL == "" {
		err := ensureDBExists(database, secrets)
		if err != nil {
			return nil, err
		}

		sqlHost := secrets.SQL.SqlHost
		// slightly silly logic to add port if missing
		if !strings.Contains(sqlHost, ":") {
			sqlHost += ":5432"
		}

		pgconn = pgdriver.NewConnector(
			pgdriver.WithAddr(sqlHost),
			pgdriver.WithInsecure(true),
			pgdriver.WithUser(secrets.SQL.SqlUsername),
			pgdriver.WithPassword(secrets.SQL.SqlPassword),
			pgdriver.WithDatabase(database),
		)
	} else {
		// this panics if its invalid
		pgconn = pgdriver.NewConnector(pgdriver.WithDSN(secrets.DatabaseURL))
	}

	db := sql.OpenDB(pgconn)
	err := db.Ping()

	return bun.NewDB(db, pgdialect.New()), err
}

func ensureDBExists(database string, secrets *config.Secrets) error {
	pgconn := pgdriver.NewConnector(
		pgdriver.WithAddr(secrets.SQL.SqlHost),
		pgdriver.WithInsecure(true),
		pgdriver.WithUser(secrets.SQL.SqlUsername),
		pgdriver.WithPassword(secrets.SQL.SqlPassword),
		pgdriver.WithDatabase("postgres"),
	)

	db := sql.OpenDB(pgconn)
	defer db.Close()

	rows, err := db.Query(fmt.Sprintf("SELECT datname FROM pg_database where datname = '%s'", database))
	if err != nil {
		return fmt.Errorf("failed to get list of databases: %w", err)
	}
	defer rows.Close()

	// next meaning there is a row, all we care about is if there is a row
	if !rows.Next() {
		klog.Infof("Creating database %s in postgres", database)
		_, err := db.Exec("CREATE DATABASE " + database)
		if err != nil {
			return fmt.Errorf("failed to create database %s: %w", database, err)
		}
	}

	return nil
}
