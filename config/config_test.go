package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, []string{"localhost:9093"}, cfg.Kafka.Brokers)
	assert.Equal(t, "audit.events", cfg.Kafka.AuditTopic)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "control-service", cfg.Service.Name)
	assert.Equal(t, "Asia/Tashkent", cfg.ChannelDefaults.Timezone)
	assert.Equal(t, 60, cfg.ChannelDefaults.PostIntervalMin)
	assert.Len(t, cfg.ChannelDefaults.DefaultReactions, 5)
	assert.Empty(t, cfg.OwnerIDs)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("CHANNEL_POST_INTERVAL_MIN", "15")
	t.Setenv("OWNER_IDS", "100, 200,abc,300")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 15, cfg.ChannelDefaults.PostIntervalMin)
	assert.Equal(t, []int64{100, 200, 300}, cfg.OwnerIDs)
}

func TestLoad_BadIntFallsBackToDefault(t *testing.T) {
	t.Setenv("CHANNEL_POST_INTERVAL_MIN", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.ChannelDefaults.PostIntervalMin)
}

func TestValidate(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Database.Host = ""
	assert.Error(t, cfg.Validate())

	cfg, err = Load()
	require.NoError(t, err)
	cfg.ChannelDefaults.PostIntervalMin = 0
	assert.Error(t, cfg.Validate())
}

func TestDatabaseConfig_GetDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "u",
		Password: "p",
		DBName:   "d",
		SSLMode:  "disable",
	}

	assert.Equal(t, "host=localhost port=5432 user=u password=p dbname=d sslmode=disable", cfg.GetDSN())
}

func TestParseOwnerIDs(t *testing.T) {
	assert.Empty(t, parseOwnerIDs(""))
	assert.Equal(t, []int64{42}, parseOwnerIDs("42"))
	assert.Equal(t, []int64{1, 2}, parseOwnerIDs(" 1 ,, 2 "))
}
