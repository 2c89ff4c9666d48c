package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("DASHBOARD_TEST_VALUE", "set")
	t.Setenv("DASHBOARD_TEST_EMPTY", "")

	assert.Equal(t, "set", GetEnv("DASHBOARD_TEST_VALUE", "default"))
	assert.Equal(t, "default", GetEnv("DASHBOARD_TEST_EMPTY", "default"))
	assert.Equal(t, "default", GetEnv("DASHBOARD_TEST_UNSET", "default"))
}

func TestTypedEnv(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("DB_MAX_IDLE_CONNS", "many")
	t.Setenv("SUPABASE_TIMEOUT", "5s")
	t.Setenv("KAFKA_BROKERS", " kafka-1:9092, ,kafka-2:9092")

	assert.Equal(t, 25, GetIntEnv("DB_MAX_OPEN_CONNS", 100))
	assert.Equal(t, 10, GetIntEnv("DB_MAX_IDLE_CONNS", 10))
	assert.Equal(t, 5*time.Second, GetDurationEnv("SUPABASE_TIMEOUT", 0))
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, GetListEnv("KAFKA_BROKERS", nil))
	assert.Equal(t, []string{"localhost:9092"}, GetListEnv("UNSET_BROKERS", []string{"localhost:9092"}))
}

func TestDataSource(t *testing.T) {
	t.Setenv("DASHBOARD_DATA_SOURCE", "")
	assert.Equal(t, DataSourcePostgres, DataSource())

	t.Setenv("DASHBOARD_DATA_SOURCE", "Supabase")
	assert.Equal(t, DataSourceSupabase, DataSource())

	t.Setenv("DASHBOARD_DATA_SOURCE", "mysql")
	assert.Equal(t, DataSourcePostgres, DataSource())
}

func TestLocation(t *testing.T) {
	t.Setenv("DASHBOARD_TIMEZONE", "")
	assert.Equal(t, time.Local, Location())

	t.Setenv("DASHBOARD_TIMEZONE", "UTC")
	assert.Equal(t, "UTC", Location().String())

	t.Setenv("DASHBOARD_TIMEZONE", "Mars/Olympus_Mons")
	assert.Equal(t, time.Local, Location())
}

func TestIsProduction(t *testing.T) {
	t.Setenv("ENV", "production")
	assert.True(t, IsProduction())

	t.Setenv("ENV", "staging")
	assert.False(t, IsProduction())
}
