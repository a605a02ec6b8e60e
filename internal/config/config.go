package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Database struct {
		Driver string `yaml:"driver"`
		URL    string `yaml:"url"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Auth struct {
		SigningKey      string `yaml:"signing_key"`
		AccessTTLHours  int    `yaml:"access_ttl_hours"`
		RefreshTTLHours int    `yaml:"refresh_ttl_hours"`
		GoogleClientID  string `yaml:"google_client_id"`
	} `yaml:"auth"`
	Storage struct {
		// "local" or "s3"
		Kind      string `yaml:"kind"`
		LocalDir  string `yaml:"local_dir"`
		Bucket    string `yaml:"bucket"`
		Region    string `yaml:"region"`
		Endpoint  string `yaml:"endpoint"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
	} `yaml:"storage"`
}

func LoadConfig() Config {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		log.Fatalf("Failed to unmarshal config data: %v", err)
	}

	if cfg.Auth.AccessTTLHours == 0 {
		cfg.Auth.AccessTTLHours = 20
	}
	if cfg.Auth.RefreshTTLHours == 0 {
		cfg.Auth.RefreshTTLHours = 24 * 30
	}
	if cfg.Storage.Kind == "" {
		cfg.Storage.Kind = "local"
	}
	if cfg.Storage.LocalDir == "" {
		cfg.Storage.LocalDir = "cmd/uploads/cars"
	}
	return cfg
}
