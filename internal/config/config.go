// Package config selects the process configuration from the environment.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/vvka-141/sheetload/pkg/sheetload"
)

// Environment variables read by Resolve.
const (
	EnvMode        = "APP_ENV"
	EnvDatabaseURL = "DATABASE_URL"
	EnvSecretKey   = "SECRET_KEY"
)

// Names used by existing deployments of the importer. Each is read only
// when its counterpart above is unset or empty.
const (
	LegacyEnvMode        = "FLASK_ENV"
	LegacyEnvDatabaseURL = "SQLALCHEMY_DATABASE_URI"
)

// EnvFileName is the optional dotenv file loaded by Load.
const EnvFileName = ".env"

// Resolve builds the configuration from the given environment lookup.
// APP_ENV=production selects production, which takes DATABASE_URL as-is
// (possibly empty). Anything else selects development, which falls back to
// a local database. FLASK_ENV and SQLALCHEMY_DATABASE_URI stand in for
// APP_ENV and DATABASE_URL when those are unset.
func Resolve(getenv func(string) string) sheetload.Config {
	getenv = withFallback(getenv, map[string]string{
		EnvMode:        LegacyEnvMode,
		EnvDatabaseURL: LegacyEnvDatabaseURL,
	})

	secret := getenv(EnvSecretKey)
	if secret == "" {
		secret = sheetload.DefaultSecretKey
	}

	if sheetload.Mode(getenv(EnvMode)) == sheetload.ModeProduction {
		return sheetload.Config{
			Mode:        sheetload.ModeProduction,
			DatabaseURL: getenv(EnvDatabaseURL),
			SecretKey:   secret,
			Debug:       false,
		}
	}

	url := getenv(EnvDatabaseURL)
	if url == "" {
		url = sheetload.DefaultDevelopmentDatabaseURL
	}
	return sheetload.Config{
		Mode:        sheetload.ModeDevelopment,
		DatabaseURL: url,
		SecretKey:   secret,
		Debug:       true,
	}
}

// Load reads an optional .env file from the working directory and resolves
// the configuration from the process environment.
// Variables already set in the environment take precedence over the file.
func Load() sheetload.Config {
	_ = godotenv.Load(EnvFileName)
	return Resolve(os.Getenv)
}

// withFallback returns a lookup that consults fallbacks[key] when key is empty.
func withFallback(getenv func(string) string, fallbacks map[string]string) func(string) string {
	return func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		if alt, ok := fallbacks[key]; ok {
			return getenv(alt)
		}
		return ""
	}
}
