/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package contextstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/asgardeo/spark/idx"
	"github.com/asgardeo/spark/idx/flowerror"
	"github.com/asgardeo/spark/internal/system/log"
)

// Supported SQL driver names.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const createContextTableQuery = `CREATE TABLE IF NOT EXISTS flow_context (
	context_key TEXT PRIMARY KEY,
	context_data TEXT NOT NULL,
	expires_at TIMESTAMP NOT NULL
)`

// SQLStore persists serialized contexts in a relational database. It speaks
// PostgreSQL and SQLite through their registered drivers.
type SQLStore struct {
	db             *sql.DB
	driver         string
	validityPeriod time.Duration
	logger         *log.Logger
}

// NewSQLStore opens the database, ensures the backing table exists and
// returns the store. The caller owns closing the store.
func NewSQLStore(driver, dataSourceName string, validityPeriod time.Duration) (*SQLStore, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, flowerror.NewInvalidParameterValue("driver", "postgres or sqlite")
	}
	if validityPeriod <= 0 {
		validityPeriod = DefaultValidityPeriod
	}

	db, err := sql.Open(driver, dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open context database: %w", err)
	}
	if _, err := db.Exec(createContextTableQuery); err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			return nil, fmt.Errorf("failed to create context table: %w", errors.Join(err, closeErr))
		}
		return nil, fmt.Errorf("failed to create context table: %w", err)
	}

	return &SQLStore{
		db:             db,
		driver:         driver,
		validityPeriod: validityPeriod,
		logger:         log.GetLogger().With(log.String(log.LoggerKeyComponentName, "SQLContextStore")),
	}, nil
}

// Save persists a context under the given key.
func (ss *SQLStore) Save(ctx context.Context, key string, flowContext *idx.Context) error {
	if key == "" {
		return flowerror.NewMissingRequiredParameter("key")
	}
	if flowContext == nil {
		return flowerror.NewMissingRequiredParameter("context")
	}

	data, err := flowContext.Serialize()
	if err != nil {
		return err
	}
	expiresAt := time.Now().Add(ss.validityPeriod)

	query := `INSERT INTO flow_context (context_key, context_data, expires_at) VALUES ($1, $2, $3)
		ON CONFLICT (context_key) DO UPDATE SET context_data = $2, expires_at = $3`
	if ss.driver == DriverSQLite {
		query = `INSERT INTO flow_context (context_key, context_data, expires_at) VALUES (?, ?, ?)
			ON CONFLICT (context_key) DO UPDATE SET context_data = excluded.context_data,
			expires_at = excluded.expires_at`
	}

	if _, err := ss.db.ExecContext(ctx, query, key, string(data), expiresAt); err != nil {
		return fmt.Errorf("failed to save flow context: %w", err)
	}
	return nil
}

// Load retrieves the context stored under the key. Expired rows are deleted
// on read.
func (ss *SQLStore) Load(ctx context.Context, key string) (*idx.Context, error) {
	if key == "" {
		return nil, flowerror.NewMissingRequiredParameter("key")
	}

	query := `SELECT context_data, expires_at FROM flow_context WHERE context_key = $1`
	if ss.driver == DriverSQLite {
		query = `SELECT context_data, expires_at FROM flow_context WHERE context_key = ?`
	}

	var data string
	var expiresAt time.Time
	err := ss.db.QueryRowContext(ctx, query, key).Scan(&data, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrContextNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load flow context: %w", err)
	}

	if !time.Now().Before(expiresAt) {
		if deleteErr := ss.Delete(ctx, key); deleteErr != nil {
			ss.logger.Error("Error deleting expired flow context", log.Error(deleteErr))
		}
		return nil, ErrContextNotFound
	}

	return idx.DeserializeContext([]byte(data))
}

// Delete removes the entry for the key.
func (ss *SQLStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return flowerror.NewMissingRequiredParameter("key")
	}

	query := `DELETE FROM flow_context WHERE context_key = $1`
	if ss.driver == DriverSQLite {
		query = `DELETE FROM flow_context WHERE context_key = ?`
	}
	if _, err := ss.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete flow context: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (ss *SQLStore) Close() error {
	return ss.db.Close()
}
