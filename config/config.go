package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	BackendCSV    = "csv"
	BackendBadger = "badger"
	BackendMySQL  = "mysql"
	BackendMemory = "memory"
)

// Config is read from the environment, optionally seeded from a .env file.
type Config struct {
	Port string `envconfig:"PORT" default:"8080"`

	Backend          string `envconfig:"STORAGE_BACKEND" default:"csv"`
	DataDir          string `envconfig:"DATA_DIR" default:"."`
	RoomsFile        string `envconfig:"ROOMS_FILE" default:"rooms.csv"`
	ReservationsFile string `envconfig:"RESERVATIONS_FILE" default:"reservations.csv"`
	BadgerDir        string `envconfig:"BADGER_DIR" default:"data/badger"`
	SeedFile         string `envconfig:"SEED_FILE"`

	StrictPersistence bool `envconfig:"STRICT_PERSISTENCE" default:"false"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`

	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat      string `envconfig:"LOG_FORMAT" default:"text"`
	TracingEnabled bool   `envconfig:"TRACING_ENABLED" default:"false"`

	// MySQL, used by the mysql backend only.
	MySQLURL    string `envconfig:"MYSQL_URL"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	DBUser      string `envconfig:"DB_USER" default:"root"`
	DBPass      string `envconfig:"DB_PASS"`
	DBHost      string `envconfig:"DB_HOST" default:"127.0.0.1"`
	DBPort      string `envconfig:"DB_PORT" default:"3306"`
	DBName      string `envconfig:"DB_NAME" default:"hotel_db"`
}

// LoadDotEnv reads .env if present. A missing file is not an error.
func LoadDotEnv(files ...string) bool {
	return godotenv.Load(files...) == nil
}

func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendCSV, BackendBadger, BackendMySQL, BackendMemory:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q (want csv, badger, mysql or memory)", c.Backend)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown LOG_FORMAT %q (want text or json)", c.LogFormat)
	}
	return nil
}

// AllowedOrigins returns trimmed CORS origins, "*" when none are set.
func (c Config) AllowedOrigins() []string {
	origins := make([]string, 0, len(c.CORSOrigins))
	for _, part := range c.CORSOrigins {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
