package main

import (
	"bytes"
	"flag"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// resetFlags resets the global flag.CommandLine to avoid "flag redefined" panic
func resetFlags() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
}

func TestParseFlags_Default(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd"}
	assert.Equal(t, "config.env", parseFlags())
}

func TestParseFlags_Custom(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "-c", "myconfig.env"}
	assert.Equal(t, "myconfig.env", parseFlags())
}

func TestPrintBuildInfo_Output(t *testing.T) {
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	buildVersion = "v1.0.0"
	buildCommit = "abcd1234"
	buildDate = "2026-08-28"

	printBuildInfo()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout

	output := buf.String()
	assert.Contains(t, output, "version v1.0.0")
	assert.Contains(t, output, "commit abcd1234")
	assert.Contains(t, output, "build 2026-08-28")
}

func TestParseConfig_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := parseConfig("nonexistent.env")
	assert.NoError(t, err)

	assert.Equal(t, "localhost", cfg.AppHost)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "info", cfg.LogLevel)

	assert.Equal(t, "localhost", cfg.PgHost)
	assert.Equal(t, 5432, cfg.PgPort)
	assert.Equal(t, "clipstream", cfg.PgDB)
	assert.Equal(t, 16, cfg.PgMaxOpenConns)
	assert.Equal(t, 8, cfg.PgMaxIdleConns)

	assert.Equal(t, "localhost", cfg.RedisHost)
	assert.Equal(t, 6379, cfg.RedisPort)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 60, cfg.CacheExpSecond)

	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "account-events", cfg.KafkaTopic)

	assert.Equal(t, "us-east-1", cfg.S3Region)
	assert.Equal(t, "clipstream-media", cfg.S3Bucket)

	assert.Equal(t, 900, cfg.JWTAccessExpSecond)
	assert.Equal(t, 864000, cfg.JWTRefreshExpSecond)

	assert.False(t, cfg.SubscriptionUnique)
}

func TestParseConfig_CustomEnv(t *testing.T) {
	os.Clearenv()
	os.Setenv("APP_HOST", "127.0.0.1")
	os.Setenv("APP_PORT", "9090")
	os.Setenv("APP_LOG_LEVEL", "debug")
	os.Setenv("POSTGRES_HOST", "pg.example.com")
	os.Setenv("POSTGRES_PORT", "5433")
	os.Setenv("POSTGRES_DB", "mydb")
	os.Setenv("REDIS_HOST", "redis.example.com")
	os.Setenv("REDIS_PORT", "6380")
	os.Setenv("REDIS_EXP_SECOND", "120")
	os.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	os.Setenv("KAFKA_TOPIC", "events")
	os.Setenv("S3_BUCKET", "media")
	os.Setenv("S3_BASE_URL", "https://cdn.example.com")
	os.Setenv("JWT_ACCESS_SECRET", "a-secret")
	os.Setenv("JWT_REFRESH_SECRET", "r-secret")
	os.Setenv("JWT_ACCESS_EXP_SECOND", "300")
	os.Setenv("JWT_REFRESH_EXP_SECOND", "604800")
	os.Setenv("SUBSCRIPTION_UNIQUE", "true")

	cfg, err := parseConfig("nonexistent.env")
	assert.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.AppHost)
	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "pg.example.com", cfg.PgHost)
	assert.Equal(t, 5433, cfg.PgPort)
	assert.Equal(t, "mydb", cfg.PgDB)
	assert.Equal(t, "redis.example.com", cfg.RedisHost)
	assert.Equal(t, 6380, cfg.RedisPort)
	assert.Equal(t, 120, cfg.CacheExpSecond)
	assert.Equal(t, "kafka-1:9092,kafka-2:9092", cfg.KafkaBrokers)
	assert.Equal(t, "events", cfg.KafkaTopic)
	assert.Equal(t, "media", cfg.S3Bucket)
	assert.Equal(t, "https://cdn.example.com", cfg.S3BaseURL)
	assert.Equal(t, "a-secret", cfg.JWTAccessSecret)
	assert.Equal(t, "r-secret", cfg.JWTRefreshSecret)
	assert.Equal(t, 300, cfg.JWTAccessExpSecond)
	assert.Equal(t, 604800, cfg.JWTRefreshExpSecond)
	assert.True(t, cfg.SubscriptionUnique)
}

func TestParseConfig_InvalidNumber(t *testing.T) {
	os.Clearenv()
	os.Setenv("POSTGRES_PORT", "not-a-number")

	_, err := parseConfig("nonexistent.env")
	assert.Error(t, err)
}
