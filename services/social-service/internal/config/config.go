package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/devconnector-api/shared/security"
)

const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"
)

// SocialServiceConfig holds the configuration of the social service, read from environment variables.
type SocialServiceConfig struct {
	AppEnv   string `env:"APP_ENV"   envDefault:"production"`
	HTTPHost string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	HTTPPort int    `env:"HTTP_PORT" envDefault:"5555"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	StoreDriver         string        `env:"STORE_DRIVER"          envDefault:"mongo"`
	MongoURI            string        `env:"MONGO_URI"             envDefault:"mongodb://localhost:27017"`
	MongoDatabase       string        `env:"MONGO_DATABASE"        envDefault:"devconnector"`
	MongoConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" envDefault:"10s"`

	JWTSecret             string        `env:"JWT_SECRET,required"`
	TokenExpiresIn        time.Duration `env:"TOKEN_EXPIRES_IN"        envDefault:"1h"`
	TokenIssuer           string        `env:"TOKEN_ISSUER"`
	PasswordHashAlgorithm string        `env:"PASSWORD_HASH_ALGORITHM" envDefault:"bcrypt"`

	GitHubAPIURL  string        `env:"GITHUB_API_URL" envDefault:"https://api.github.com"`
	GitHubToken   string        `env:"GITHUB_TOKEN"`
	GitHubTimeout time.Duration `env:"GITHUB_TIMEOUT" envDefault:"10s"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	GRPCHealthAddr string `env:"GRPC_HEALTH_ADDR"`
	ConsulAddr     string `env:"CONSUL_ADDR"`
	ServiceName    string `env:"SERVICE_NAME" envDefault:"social-service"`
}

// Load parses the configuration from the environment and validates it.
func Load() (*SocialServiceConfig, error) {
	cfg, err := env.ParseAs[SocialServiceConfig]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// NewSocialServiceConfig loads the configuration and exits the process when it is invalid.
func NewSocialServiceConfig(logger *zerolog.Logger) *SocialServiceConfig {
	cfg, err := Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load social service config")
	}

	return cfg
}

// Validate checks if the configuration is usable.
func (c *SocialServiceConfig) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("missing JWT_SECRET environment variable")
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP_PORT %d", c.HTTPPort)
	}
	if c.TokenExpiresIn <= 0 {
		return fmt.Errorf("invalid TOKEN_EXPIRES_IN %s", c.TokenExpiresIn)
	}

	switch c.StoreDriver {
	case StoreDriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("missing MONGO_URI environment variable")
		}
		if c.MongoDatabase == "" {
			return fmt.Errorf("missing MONGO_DATABASE environment variable")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}

	switch security.Algorithm(c.PasswordHashAlgorithm) {
	case security.AlgorithmBcrypt, security.AlgorithmArgon2id:
	default:
		return fmt.Errorf("unsupported PASSWORD_HASH_ALGORITHM %q", c.PasswordHashAlgorithm)
	}

	return nil
}

// IsDevelopment reports whether the service runs in a development environment.
func (c *SocialServiceConfig) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// HTTPAddr returns the listen address of the HTTP server.
func (c *SocialServiceConfig) HTTPAddr() string {
	return net.JoinHostPort(c.HTTPHost, strconv.Itoa(c.HTTPPort))
}
