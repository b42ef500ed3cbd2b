package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ilyakaznacheev/cleanenv"
)

type Reader interface {
	Read() (*Config, error)
}

type EnvReader struct{}

func NewEnvReader() EnvReader {
	return EnvReader{}
}

func (EnvReader) Read() (*Config, error) {
	cfg := new(Config)
	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, err
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

var backends = []string{
	BackendFile,
	BackendPostgres,
	BackendRedis,
	BackendSQLite,
	BackendMemory,
}

// Validate checks the cross-field rules env tags can't express.
func (c *Config) Validate() error {
	if !slices.Contains(backends, c.Storage.Backend) {
		return fmt.Errorf("unknown storage backend: %q", c.Storage.Backend)
	}

	if c.Storage.Backend == BackendPostgres {
		pg := c.Postgres
		if pg.Host == "" || pg.Username == "" || pg.Password == "" || pg.Database == "" {
			return errors.New("postgres backend requires POSTGRES_HOST, POSTGRES_USERNAME, POSTGRES_PASSWORD and POSTGRES_DATABASE")
		}
	}
	return nil
}
