package config

import (
	"log"
	"os"
	"sync"
)

type AppConfig struct {
	Name      string
	Env       string
	Port      string
	BaseURL   string
	LogLevel  string
	LogFormat string
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
			log.Printf("Warning: APP_ENV not set, defaulting to %s", env)
		}
		logLevel := os.Getenv("LOG_LEVEL")
		if logLevel == "" {
			logLevel = "info"
		}
		logFormat := os.Getenv("LOG_FORMAT")
		if logFormat == "" {
			if env == "production" {
				logFormat = "json"
			} else {
				logFormat = "console"
			}
		}
		appConfig = &AppConfig{
			Name:      os.Getenv("APP_NAME"),
			Env:       env,
			Port:      os.Getenv("APP_PORT"),
			BaseURL:   os.Getenv("APP_URL"),
			LogLevel:  logLevel,
			LogFormat: logFormat,
		}
	})
	return appConfig
}
