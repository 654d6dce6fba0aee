package config

import (
	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Database *dbConfig
	Service  *svcConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"sqlite"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"powerguard.db"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address          string   `envconfig:"POWERGUARD_ADDRESS" default:":3443"`
	MetricsAddress   string   `envconfig:"POWERGUARD_METRICS_ADDRESS" default:":8080"`
	LogLevel         string   `envconfig:"POWERGUARD_LOG_LEVEL" default:"info"`
	CalculationModel string   `envconfig:"POWERGUARD_CALCULATION_MODEL" default:"topology"`
	MigrationFolder  string   `envconfig:"POWERGUARD_MIGRATIONS_FOLDER" default:""`
	CorsOrigins      []string `envconfig:"POWERGUARD_CORS_ORIGINS" default:"https://*,http://*"`
}

// New reads the configuration from the environment once and returns the cached value afterwards.
func New() (*Config, error) {
	if singleConfig == nil {
		cfg := new(Config)
		if err := envconfig.Process("", cfg); err != nil {
			return nil, err
		}
		singleConfig = cfg
	}
	return singleConfig, nil
}

// NewDefault returns a fresh configuration holding only the default values, ignoring the environment.
func NewDefault() *Config {
	return &Config{
		Database: &dbConfig{
			Type:     "sqlite",
			Hostname: "localhost",
			Port:     "5432",
			Name:     "powerguard.db",
			User:     "admin",
			Password: "adminpass",
		},
		Service: &svcConfig{
			Address:          ":3443",
			MetricsAddress:   ":8080",
			LogLevel:         "info",
			CalculationModel: "topology",
			CorsOrigins:      []string{"https://*", "http://*"},
		},
	}
}
