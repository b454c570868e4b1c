package config

import (
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvLocal = "local"
	EnvProd  = "prod"
)

type Config struct {
	Env        string `yaml:"env" env:"HELPROTA_ENV"`
	ListenAddr string `yaml:"listen_addr" env:"HELPROTA_LISTEN_ADDR"`
	DataDir    string `yaml:"data_dir" env:"HELPROTA_DATA_DIR"`
	StaticDir  string `yaml:"static_dir" env:"HELPROTA_STATIC_DIR"`
	DefaultPIN string `yaml:"default_pin" env:"HELPROTA_DEFAULT_PIN"`
}

func (c *Config) ApplyDefaults() {
	if c.Env == "" {
		c.Env = EnvLocal
	}
	if c.ListenAddr == "" {
		c.ListenAddr = ":8090"
	}
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.StaticDir == "" {
		c.StaticDir = "static"
	}
	if c.DefaultPIN == "" {
		c.DefaultPIN = "1234"
	}
}

// Load reads the yaml config at path, then overlays environment variables.
// A missing config file is not an error; env vars and defaults still apply.
func Load(path string) (*Config, error) {
	var c Config

	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	if err := cleanenv.ReadEnv(&c); err != nil {
		return nil, err
	}

	c.ApplyDefaults()
	return &c, nil
}
