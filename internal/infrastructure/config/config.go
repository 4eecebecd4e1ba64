package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all store configuration
type Config struct {
	Store    StoreConfig
	Snapshot SnapshotConfig
	Log      LogConfig
}

// StoreConfig holds working-copy settings
type StoreConfig struct {
	DataDir      string // root directory for the working database and file snapshots
	DatabaseFile string // working copy filename inside DataDir
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// SnapshotConfig selects the durable snapshot holder. One fixed key always
// holds the latest snapshot.
type SnapshotConfig struct {
	Holder string // "file" or "s3"
	Key    string // object key holding the latest snapshot
	File   FileHolderConfig
	S3     S3HolderConfig
}

// FileHolderConfig holds settings for the local directory holder
type FileHolderConfig struct {
	Dir string // defaults to <DataDir>/snapshots
}

// S3HolderConfig holds settings for an S3-compatible holder
type S3HolderConfig struct {
	Bucket          string
	Prefix          string
	Region          string
	Endpoint        string // custom endpoint for S3-compatible services, empty for AWS
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with BOOKS_ prefix (e.g., BOOKS_STORE_DATADIR)
// 2. books.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("books")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("BOOKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Store: StoreConfig{
			DataDir:      v.GetString("store.datadir"),
			DatabaseFile: v.GetString("store.database_file"),
		},
		Snapshot: SnapshotConfig{
			Holder: v.GetString("snapshot.holder"),
			Key:    v.GetString("snapshot.key"),
			File: FileHolderConfig{
				Dir: v.GetString("snapshot.file.dir"),
			},
			S3: S3HolderConfig{
				Bucket:          v.GetString("snapshot.s3.bucket"),
				Prefix:          v.GetString("snapshot.s3.prefix"),
				Region:          v.GetString("snapshot.s3.region"),
				Endpoint:        v.GetString("snapshot.s3.endpoint"),
				AccessKeyID:     v.GetString("snapshot.s3.access_key_id"),
				SecretAccessKey: v.GetString("snapshot.s3.secret_access_key"),
				UsePathStyle:    v.GetBool("snapshot.s3.use_path_style"),
			},
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyDefaults sets default values for any empty config fields
func ApplyDefaults(cfg *Config) {
	if cfg.Store.DataDir == "" {
		cfg.Store.DataDir = "data"
	}
	if cfg.Store.DatabaseFile == "" {
		cfg.Store.DatabaseFile = "books.db"
	}
	if cfg.Snapshot.Holder == "" {
		cfg.Snapshot.Holder = "file"
	}
	if cfg.Snapshot.Key == "" {
		cfg.Snapshot.Key = "books.snapshot"
	}
	if cfg.Snapshot.File.Dir == "" {
		cfg.Snapshot.File.Dir = filepath.Join(cfg.Store.DataDir, "snapshots")
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stderr"
	}
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	if c.Store.DataDir == "" {
		return fmt.Errorf("store.datadir cannot be empty")
	}
	if c.Store.DatabaseFile == "" {
		return fmt.Errorf("store.database_file cannot be empty")
	}
	if c.Snapshot.Key == "" {
		return fmt.Errorf("snapshot.key cannot be empty")
	}

	switch c.Snapshot.Holder {
	case "file":
		if c.Snapshot.File.Dir == "" {
			return fmt.Errorf("snapshot.file.dir cannot be empty")
		}
	case "s3":
		if c.Snapshot.S3.Bucket == "" {
			return fmt.Errorf("snapshot.s3.bucket is required for the s3 holder")
		}
		if c.Snapshot.S3.Region == "" && c.Snapshot.S3.Endpoint == "" {
			return fmt.Errorf("snapshot.s3.region or snapshot.s3.endpoint is required for the s3 holder")
		}
	default:
		return fmt.Errorf("snapshot.holder must be \"file\" or \"s3\", got %q", c.Snapshot.Holder)
	}

	return nil
}

// DatabasePath returns the full path of the working database file
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Store.DataDir, c.Store.DatabaseFile)
}

// Default returns the built-in configuration without reading files or
// environment, for embedding applications that configure in code.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
