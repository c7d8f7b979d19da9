package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("TESTCFG_JWT_SECRET", "")

	_, err := Load("TESTCFG")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TESTCFG_JWT_SECRET")
}

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("TESTCFG_JWT_SECRET", "s3cret")
	t.Setenv("TESTCFG_DB_DRIVER", "SQLite")
	t.Setenv("TESTCFG_SERVICE_PORT", "8081")
	t.Setenv("TESTCFG_KAFKA_BROKERS", "k1:9092, ,k2:9092")

	v, err := Load("TESTCFG")
	require.NoError(t, err)

	assert.Equal(t, ":8081", GetServicePort(v, "SERVICE_PORT"))
	assert.Equal(t, "development", GetAppEnv(v))

	db := LoadDatabaseConfig(v, "DB_NAME")
	assert.Equal(t, "sqlite", db.Driver)
	assert.Equal(t, "adoption.db", db.DSN())

	jwtCfg := LoadJWTConfig(v)
	assert.Equal(t, "s3cret", jwtCfg.Secret)
	assert.Equal(t, 24*time.Hour, jwtCfg.TTL)

	kafkaCfg := LoadKafkaConfig(v)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, kafkaCfg.Brokers)
}

func TestDatabaseConfig_PostgresStrings(t *testing.T) {
	db := DatabaseConfig{
		Driver: "postgres", Host: "db", Port: "5432", User: "u",
		Password: "p", DBName: "adoption", SSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=adoption sslmode=disable TimeZone=UTC", db.DSN())
	assert.Equal(t, "postgres://u:p@db:5432/adoption?sslmode=disable", db.DatabaseURL())
}
