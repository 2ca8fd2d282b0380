package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/flagx"
	"github.com/joho/godotenv"
)

// Recognised environment variables.
const (
	envPort          = "PORT"
	envURIDB         = "URI_DB"
	envDatabaseDSN   = "DATABASE_DSN"
	envJWTSecret     = "JWT_SECRET"
	envTokenTTL      = "TOKEN_TTL"
	envAuthRateLimit = "AUTH_RATE_LIMIT"
	envStorage       = "STORAGE"
	envLogLevel      = "LOG_LEVEL"
)

// parseEnv loads a dotenv file into the process environment and then reads
// the recognised variables into config. The file is the one named by -env,
// or ./.env when present. Variables already set in the environment win
// over the file.
func parseEnv(config *Config) {
	loadDotEnv()

	if v := os.Getenv(envPort); v != "" {
		if strings.Contains(v, ":") {
			config.EndpointAddr = v
		} else {
			config.EndpointAddr = ":" + v
		}
	}
	if v := os.Getenv(envURIDB); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv(envDatabaseDSN); v != "" {
		config.DatabaseDSN = v
	}
	setString(&config.SecretKey, os.Getenv(envJWTSecret))
	setString(&config.AuthRateLimit, os.Getenv(envAuthRateLimit))
	setString(&config.Storage, os.Getenv(envStorage))
	setString(&config.LogLevel, os.Getenv(envLogLevel))

	if v := os.Getenv(envTokenTTL); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.AccessTokenValidityDuration = d
	}
}

func loadDotEnv() {
	if path := flagx.EnvFileFlag(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
		return
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
}
