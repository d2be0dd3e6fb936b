package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	Storage StorageConfig
	Admin   AdminConfig
}

type StorageConfig struct {
	// Driver selects the KV storage backend: file, sqlite, or memory.
	Driver     string `env:"STORAGE_DRIVER, default=file"`
	DataDir    string `env:"DATA_DIR,       default=./data"`
	SQLitePath string `env:"SQLITE_PATH,    default=./data/approval.db"`
}

// AdminConfig is the bootstrap admin credential. It must exist in the
// credential table whenever the application starts, even on a first run.
type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME, default=aarnav"`
	Password string `env:"ADMIN_PASSWORD, default=aarnav"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
