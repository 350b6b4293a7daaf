// pkg/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	HTTPAddr string

	// Identity provider (Cognito) coordinates
	AWSRegion         string
	CognitoUserPoolID string
	CognitoClientID   string

	// Statically whitelisted business that is always routable
	BootstrapBusiness string

	// LocalJWT skips signature verification (local identity emulators only,
	// never honored when Env == "prod")
	LocalJWT bool

	IdPTimeout   time.Duration
	JWKSCacheTTL time.Duration

	RateLimitPerMinute int

	// Redis & Postgres
	RedisURL    string
	DatabaseURL string
	DBMaxConns  int
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Env:                env("INTRALE_ENV", "dev"),
		HTTPAddr:           env("INTRALE_HTTP_ADDR", ":8080"),
		AWSRegion:          env("AWS_REGION", "us-east-1"),
		CognitoUserPoolID:  env("COGNITO_USER_POOL_ID", ""),
		CognitoClientID:    env("COGNITO_CLIENT_ID", ""),
		BootstrapBusiness:  env("BOOTSTRAP_BUSINESS", "intrale"),
		LocalJWT:           envBool("LOCAL_JWT", false),
		IdPTimeout:         envDur("IDP_TIMEOUT_SEC", 10) * time.Second,
		JWKSCacheTTL:       envDur("JWKS_CACHE_TTL_HOURS", 6) * time.Hour,
		RateLimitPerMinute: envInt("RATE_LIMIT_PER_MINUTE", 600),
		RedisURL:           env("REDIS_URL", ""),
		DatabaseURL:        env("DATABASE_URL", ""),
		DBMaxConns:         envInt("DATABASE_MAX_CONNS", 8),
	}
	if cfg.DatabaseURL == "" {
		log.Println("[WARN] DATABASE_URL not set, using in-memory stores for dev")
	}
	return cfg
}

// Issuer returns the identity provider endpoint expected in token `iss` claims.
func (c Config) Issuer() string {
	return "https://cognito-idp." + c.AWSRegion + ".amazonaws.com/" + c.CognitoUserPoolID
}

// JWKSURL returns the published signing-key set location for the pool.
func (c Config) JWKSURL() string {
	return c.Issuer() + "/.well-known/jwks.json"
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
func envBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		b, _ := strconv.ParseBool(v)
		return b
	}
	return def
}
func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		i, _ := strconv.Atoi(v)
		return i
	}
	return def
}
func envDur(k string, def int) time.Duration {
	if v := os.Getenv(k); v != "" {
		i, _ := strconv.Atoi(v)
		return time.Duration(i)
	}
	return time.Duration(def)
}
