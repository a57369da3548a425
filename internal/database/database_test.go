package database

import (
	"testing"
	"time"

	"github.com/deppfellow/employee-directory/internal/config"
	"github.com/deppfellow/employee-directory/internal/logger"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPoolConfig(t *testing.T) {
	t.Parallel()

	poolCfg, err := BuildPoolConfig(config.DatabaseConfig{
		Host:            "localhost",
		Port:            15432,
		User:            "user",
		Password:        "p@ss",
		Name:            "employees",
		SSLMode:         "disable",
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 10 * time.Minute,
	})
	require.NoError(t, err)

	assert.Equal(t, int32(20), poolCfg.MaxConns)
	assert.Equal(t, int32(5), poolCfg.MinConns)
	assert.Equal(t, 30*time.Minute, poolCfg.MaxConnLifetime)
	assert.Equal(t, 10*time.Minute, poolCfg.MaxConnIdleTime)
	assert.Equal(t, "employees", poolCfg.ConnConfig.Database)
	assert.Equal(t, "p@ss", poolCfg.ConnConfig.Password)
	assert.Equal(t, uint16(15432), poolCfg.ConnConfig.Port)
}

func TestBuildPoolConfig_IdleCappedByMax(t *testing.T) {
	t.Parallel()

	poolCfg, err := BuildPoolConfig(config.DatabaseConfig{
		Host: "localhost", Port: 5432, User: "u", Password: "p", Name: "d", SSLMode: "disable",
		MaxOpenConns: 4,
		MaxIdleConns: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int32(4), poolCfg.MinConns)
}

func TestBuildTracer(t *testing.T) {
	t.Parallel()

	log := zerolog.Nop().Level(zerolog.DebugLevel)
	svc := logger.NewLoggerService(config.DefaultObservabilityConfig())

	cfg := &config.Config{Primary: config.Primary{Env: "production"}}
	assert.Nil(t, buildTracer(cfg, &log, svc))

	cfg.Primary.Env = "local"
	tracer := buildTracer(cfg, &log, svc)
	traceLog, ok := tracer.(*tracelog.TraceLog)
	require.True(t, ok, "expected tracelog tracer, got %T", tracer)
	assert.Equal(t, tracelog.LogLevelDebug, traceLog.LogLevel)
}

func TestMigrationsEmbedded(t *testing.T) {
	t.Parallel()

	raw, err := migrations.ReadFile("migrations/001_create_employees.sql")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "CONSTRAINT employees_email_key UNIQUE (email)")
	assert.Contains(t, string(raw), "---- create above / drop below ----")
}
