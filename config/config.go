package config

import (
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	BackendBaseURL string        `envconfig:"RECSYS_API_URL"     default:"http://localhost:8000/api"`
	BackendTimeout time.Duration `envconfig:"RECSYS_API_TIMEOUT" default:"30s"` // generous: backend runs ML inference
	ListenPort     string        `envconfig:"FRONTEND_PORT"      default:":8080"`
	LogLevel       string        `envconfig:"LOG_LEVEL"          default:"info"`
	SessionDBPath  string        `envconfig:"SESSION_DB_PATH"    default:"data/session.db"`
}

var (
	config Config
	once   sync.Once
)

func LoadConfig(logger *logrus.Logger) *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		} else if err == nil {
			logger.Info("Loaded configuration from .env file")
		}

		if err := envconfig.Process("", &config); err != nil {
			logger.Fatalf("Failed to process configuration from environment variables: %v", err)
		}

		logger.Infof("Configuration loaded: Backend=%s, Timeout=%s, Port=%s, LogLevel=%s",
			config.BackendBaseURL, config.BackendTimeout, config.ListenPort, config.LogLevel)
	})
	return &config
}
