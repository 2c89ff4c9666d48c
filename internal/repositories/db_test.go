package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewDBConfig(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "dashboard_ro")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "challenz")
	t.Setenv("DB_SSLMODE", "disable")
	t.Setenv("DB_MAX_OPEN_CONNS", "5")
	t.Setenv("DB_CONN_MAX_LIFETIME", "10m")

	cfg := NewDBConfig()

	assert.Equal(t, 5, cfg.MaxOpenConns)
	assert.Equal(t, 10, cfg.MaxIdleConns)
	assert.Equal(t, 10*time.Minute, cfg.ConnMaxLifetime)
	assert.Equal(t, "host=db.internal user=dashboard_ro password=pw dbname=challenz port=6543 sslmode=disable", cfg.DSN())
}

func TestOpenBackend_UnknownSource(t *testing.T) {
	backend, err := OpenBackend("mysql")

	assert.Error(t, err)
	assert.Nil(t, backend)
}

func TestOpenBackend_SupabaseRequiresURL(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_SERVICE_KEY", "key")

	backend, err := OpenBackend("supabase")

	assert.ErrorContains(t, err, "SUPABASE_URL is required")
	assert.Nil(t, backend)
}

func TestCloseDB_Nil(t *testing.T) {
	assert.NoError(t, CloseDB(nil))
}
