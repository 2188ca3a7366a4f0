package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr   string
	GinMode   string
	DBDSN     string
	JWTSecret string
	SeedData  bool
}

// LoadEnv reads configuration from the environment with sane defaults.
// A .env file is loaded first when present.
func LoadEnv() Env {
	_ = godotenv.Load()

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if dsn == "" {
		dsn = "root:@tcp(127.0.0.1:3306)/railbook?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = "super-secret-key-change-me"
	}

	return Env{
		AppAddr:   appAddr,
		GinMode:   strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBDSN:     dsn,
		JWTSecret: secret,
		SeedData:  strings.EqualFold(strings.TrimSpace(os.Getenv("SEED_DATA")), "true"),
	}
}
