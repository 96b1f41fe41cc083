package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// ServerConfig configures cmd/api.
type ServerConfig struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=24h"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`

	// ResetURL is the client page reset links point to.
	ResetURL    string  `env:"RESET_URL,    default=http://localhost:3000/reset-password"`
	MailWorkers int     `env:"MAIL_WORKERS, default=4"`
	LoginRate   float64 `env:"LOGIN_RATE,   default=10"`
	LoginBurst  int     `env:"LOGIN_BURST,  default=5"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=fittrack"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Development reports whether the server runs outside production.
func (c *ServerConfig) Development() bool {
	return c.Env == "development"
}

// ClientConfig configures the fittrack terminal client. Command-line flags
// take precedence over these values.
type ClientConfig struct {
	APIURL     string `env:"FITTRACK_API_URL,  default=http://localhost:8080/api"`
	Provider   string `env:"FITTRACK_PROVIDER, default=memory"`
	Storage    string `env:"FITTRACK_STORAGE,  default=file"`
	Profile    string `env:"FITTRACK_PROFILE,  default=default"`
	RoutesFile string `env:"FITTRACK_ROUTES"`
	RedisAddr  string `env:"REDIS_ADDR,        default=localhost:6379"`
	LogLevel   string `env:"LOG_LEVEL,         default=warn"`
}

// LoadServer reads .env, if present, then the process environment.
func LoadServer(ctx context.Context) (*ServerConfig, error) {
	var cfg ServerConfig
	if err := load(ctx, &cfg, envconfig.OsLookuper()); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadClient reads .env, if present, then the process environment.
func LoadClient(ctx context.Context) (*ClientConfig, error) {
	var cfg ClientConfig
	if err := load(ctx, &cfg, envconfig.OsLookuper()); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func load(ctx context.Context, target any, lookuper envconfig.Lookuper) error {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   target,
		Lookuper: lookuper,
	}); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return nil
}
