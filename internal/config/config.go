package config

import (
	"github.com/huellitas-app/service-adoption/internal/platform/config"
)

// ServiceConfig holds all configuration for the adoption service.
type ServiceConfig struct {
	Port        string
	AppEnv      string
	DBConfig    config.DatabaseConfig
	JWTConfig   config.JWTConfig
	KafkaConfig config.KafkaConfig
	CORSOrigins []string
}

// Load reads configuration from ADOPTION_* environment variables.
func Load() (*ServiceConfig, error) {
	v, err := config.Load("ADOPTION")
	if err != nil {
		return nil, err
	}

	return &ServiceConfig{
		Port:        config.GetServicePort(v, "SERVICE_PORT"),
		AppEnv:      config.GetAppEnv(v),
		DBConfig:    config.LoadDatabaseConfig(v, "DB_NAME"),
		JWTConfig:   config.LoadJWTConfig(v),
		KafkaConfig: config.LoadKafkaConfig(v),
		CORSOrigins: config.SplitList(v.GetString("CORS_ORIGINS")),
	}, nil
}

// IsDevelopment reports whether the service runs with APP_ENV=development.
func (c *ServiceConfig) IsDevelopment() bool {
	return c.AppEnv == "development"
}
