package repository

import (
	"fmt"

	"github.com/unclebandit/clientes-service/internal/config"
	"github.com/unclebandit/clientes-service/internal/db"
)

// Open builds the repository selected by STORAGE_DRIVER. The returned close
// function releases the SQL connection, if any.
func Open(cfg *config.Config) (CustomerRepositoryInterface, func() error, error) {
	switch cfg.StorageDriver {
	case config.DriverFile:
		return NewFileCustomerRepository(cfg.DataFile), func() error { return nil }, nil
	case config.DriverPostgres, config.DriverSQLite:
		conn, err := db.Open(cfg.StorageDriver, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return NewSQLCustomerRepository(conn, cfg.StorageDriver), conn.Close, nil
	}
	return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
}
