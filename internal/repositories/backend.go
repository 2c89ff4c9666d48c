package repositories

import (
	"context"
	"fmt"
	"net/url"

	"challenz/internal/config"
	"challenz/internal/models"
)

// Backend bundles the configured escrow repository with its lifecycle hooks.
type Backend struct {
	Source string
	Escrow EscrowRepository
	Ping   func(ctx context.Context) error
	Close  func() error
}

// OpenBackend connects to the data source named by DASHBOARD_DATA_SOURCE.
func OpenBackend(source string) (*Backend, error) {
	switch source {
	case config.DataSourceSupabase:
		repo, err := newSupabaseEscrowRepository(SupabaseConfig{
			URL:        config.GetEnv("SUPABASE_URL", ""),
			ServiceKey: config.GetEnv("SUPABASE_SERVICE_KEY", ""),
			Timeout:    config.GetDurationEnv("SUPABASE_TIMEOUT", 0),
			PageSize:   config.GetIntEnv("SUPABASE_PAGE_SIZE", 0),
		})
		if err != nil {
			return nil, err
		}
		return &Backend{
			Source: source,
			Escrow: repo,
			Ping:   repo.Ping,
			Close:  func() error { return nil },
		}, nil

	case config.DataSourcePostgres:
		db, err := InitDB(NewDBConfig())
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database instance: %w", err)
		}
		return &Backend{
			Source: source,
			Escrow: NewEscrowRepository(db),
			Ping:   sqlDB.PingContext,
			Close:  func() error { return CloseDB(db) },
		}, nil
	}
	return nil, fmt.Errorf("unknown data source %q", source)
}

// Ping checks that the REST endpoint answers with the configured key.
func (r *supabaseEscrowRepository) Ping(ctx context.Context) error {
	query := url.Values{}
	query.Set("select", "id")
	query.Set("limit", "1")

	var rows []struct {
		ID string `json:"id"`
	}
	return r.get(ctx, models.BusinessProfile{}.TableName(), query, &rows)
}
