package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Upload   UploadConfig   `toml:"upload"`
	Auth     AuthConfig     `toml:"auth"`
	Share    ShareConfig    `toml:"share"`
}

type ServerConfig struct {
	Port string `toml:"port"`
}

type DatabaseConfig struct {
	URL string `toml:"url"`
}

// UploadConfig selects the blob backend once at startup. Provider is either
// "s3" (managed object store) or "rest" (fixed multipart upload endpoint).
type UploadConfig struct {
	Provider string     `toml:"provider"`
	S3       S3Config   `toml:"s3"`
	Rest     RestConfig `toml:"rest"`
}

type S3Config struct {
	Endpoint   string `toml:"endpoint"`
	AccessKey  string `toml:"access_key"`
	SecretKey  string `toml:"secret_key"`
	Bucket     string `toml:"bucket"`
	PublicBase string `toml:"public_base"`
	UseSSL     bool   `toml:"use_ssl"`
}

type RestConfig struct {
	Endpoint string `toml:"endpoint"`
}

type AuthConfig struct {
	PIN    string `toml:"pin"`
	Secret string `toml:"secret"`
}

type ShareConfig struct {
	BaseURL string `toml:"base_url"`
}

// Default returns the built-in defaults; Load layers a TOML file and then
// environment variables on top.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Upload: UploadConfig{Provider: "rest"},
		Share:  ShareConfig{BaseURL: "https://saywith.com/"},
	}
}

// Load reads the TOML file at path when it exists. A missing file is not an
// error: deployments that configure everything through the environment run
// without one.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setFromEnv(&cfg.Server.Port, "PORT")
	setFromEnv(&cfg.Database.URL, "DATABASE_URL")
	setFromEnv(&cfg.Auth.PIN, "SAYWITH_PIN")
	setFromEnv(&cfg.Auth.Secret, "AUTH_SECRET")
	setFromEnv(&cfg.Upload.Provider, "UPLOAD_PROVIDER")
	setFromEnv(&cfg.Upload.Rest.Endpoint, "UPLOAD_ENDPOINT")
	setFromEnv(&cfg.Upload.S3.Endpoint, "S3_ENDPOINT")
	setFromEnv(&cfg.Upload.S3.AccessKey, "S3_ACCESS_KEY")
	setFromEnv(&cfg.Upload.S3.SecretKey, "S3_SECRET_KEY")
	setFromEnv(&cfg.Upload.S3.Bucket, "S3_BUCKET")
	setFromEnv(&cfg.Upload.S3.PublicBase, "S3_PUBLIC_BASE")
	setFromEnv(&cfg.Share.BaseURL, "SHARE_BASE_URL")
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
