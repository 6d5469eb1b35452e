package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no config file is given.
const DefaultPath = "geotag.yml"

// Load reads the configuration. A .env file in the working directory is
// loaded into the environment first, then the yaml file, then GEOTAG_*
// overrides. An empty path reads DefaultPath and tolerates its absence; an
// explicit path must exist.
func Load(path string) (AppConfig, error) {
	_ = godotenv.Load()

	var cfg AppConfig
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return AppConfig{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return AppConfig{}, err
	}

	if err := applyEnv(&cfg); err != nil {
		return AppConfig{}, err
	}
	if err := validator.New().Struct(cfg); err != nil {
		return AppConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = 10
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = 3
	}
	if cfg.Log.MaxAgeDays == 0 {
		cfg.Log.MaxAgeDays = 28
	}
	if cfg.Fetch.TimeoutMS == 0 {
		cfg.Fetch.TimeoutMS = 30000
	}
	if cfg.Watch.SettleMS == 0 {
		cfg.Watch.SettleMS = 500
	}
}

func applyEnv(cfg *AppConfig) error {
	t := &cfg.Tagging
	if err := envFloat("GEOTAG_TIME_OFFSET", &t.TimeOffset); err != nil {
		return err
	}
	if err := envFloat("GEOTAG_INTERVAL", &t.Interval); err != nil {
		return err
	}
	if err := envBool("GEOTAG_LOCALTIME", &t.LocalTime); err != nil {
		return err
	}
	if err := envBool("GEOTAG_RECURSE", &t.Recurse); err != nil {
		return err
	}
	if err := envFloat("GEOTAG_BEARING_OFFSET", &t.BearingOffset); err != nil {
		return err
	}

	envString("GEOTAG_LOG_LEVEL", &cfg.Log.Level)
	envString("GEOTAG_LOG_FORMAT", &cfg.Log.Format)
	envString("GEOTAG_LOG_FILE", &cfg.Log.File)
	envString("GEOTAG_EXIFTOOL_PATH", &cfg.Exiftool.Path)
	envString("GEOTAG_JOURNAL", &cfg.Journal.Path)
	envString("GEOTAG_GTFSRT_VEHICLE", &cfg.GTFSRT.VehicleID)

	envString("GEOTAG_S3_ENDPOINT", &cfg.S3.Endpoint)
	envString("GEOTAG_S3_ACCESS_KEY", &cfg.S3.AccessKey)
	envString("GEOTAG_S3_SECRET_KEY", &cfg.S3.SecretKey)
	envString("GEOTAG_S3_REGION", &cfg.S3.Region)
	return envBool("GEOTAG_S3_USE_SSL", &cfg.S3.UseSSL)
}

func envString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func envFloat(key string, dst *float64) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = f
	return nil
}

func envBool(key string, dst *bool) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}
