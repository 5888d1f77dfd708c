package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Env es el modo de ejecución. Lo no reconocido cuenta como producción.
type Env string

const (
	EnvProduction  Env = "production"
	EnvDevelopment Env = "development"
	EnvTest        Env = "test"
)

func ParseEnv(s string) Env {
	switch Env(strings.ToLower(strings.TrimSpace(s))) {
	case EnvDevelopment:
		return EnvDevelopment
	case EnvTest:
		return EnvTest
	default:
		return EnvProduction
	}
}

const defaultDevOrigin = "http://localhost:3001"

type Config struct {
	Addr        string
	DatabaseURL string
	AutoMigrate bool
	Env         Env
	CORSOrigins []string

	LogLevel  string
	LogFormat string
	AppName   string
}

// SeedEnabled: el reemplazo destructivo del catálogo solo existe fuera de producción.
func (c Config) SeedEnabled() bool {
	return c.Env == EnvDevelopment || c.Env == EnvTest
}

// LoadDotEnv carga .env y .env.local sin pisar variables ya definidas en el proceso.
func LoadDotEnv() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// FromEnv arma la Config desde variables de entorno.
// - PORT (default 8080)
// - DB_DSN o DATABASE_URL (vacío = storage in-memory)
// - DB_AUTO_MIGRATE=true aplica migraciones al arrancar
// - APP_ENV=production|development|test (default production)
// - CORS_ORIGINS lista separada por comas (default localhost:3001 fuera de producción)
// - LOG_LEVEL, LOG_FORMAT, APP_NAME
func FromEnv() Config {
	return fromLookup(os.Getenv)
}

func fromLookup(get func(string) string) Config {
	addr := ":8080"
	if v := strings.TrimSpace(get("PORT")); v != "" {
		addr = ":" + v
	}

	dsn := strings.TrimSpace(get("DB_DSN"))
	if dsn == "" {
		dsn = strings.TrimSpace(get("DATABASE_URL"))
	}

	env := ParseEnv(get("APP_ENV"))

	var origins []string
	if v := strings.TrimSpace(get("CORS_ORIGINS")); v != "" {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	} else if env != EnvProduction {
		origins = []string{defaultDevOrigin}
	}

	app := strings.TrimSpace(get("APP_NAME"))
	if app == "" {
		app = "animal-adoption"
	}

	return Config{
		Addr:        addr,
		DatabaseURL: dsn,
		AutoMigrate: strings.EqualFold(strings.TrimSpace(get("DB_AUTO_MIGRATE")), "true"),
		Env:         env,
		CORSOrigins: origins,
		LogLevel:    get("LOG_LEVEL"),
		LogFormat:   get("LOG_FORMAT"),
		AppName:     app,
	}
}
