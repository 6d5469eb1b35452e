package config

import (
	"math"
	"time"
)

// TaggingConfig holds the per-batch geotagging parameters. Times are seconds.
type TaggingConfig struct {
	TimeOffset    float64 `yaml:"timeOffset"`
	Interval      float64 `yaml:"interval" validate:"gte=0"`
	LocalTime     bool    `yaml:"localTime"`
	Recurse       bool    `yaml:"recurse"`
	BearingOffset float64 `yaml:"bearingOffset"`
}

// ClockOffset returns TimeOffset as a Duration.
func (t TaggingConfig) ClockOffset() time.Duration { return Seconds(t.TimeOffset) }

// ShotInterval returns Interval as a Duration.
func (t TaggingConfig) ShotInterval() time.Duration { return Seconds(t.Interval) }

// LogConfig contains logger configuration
type LogConfig struct {
	Level      string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format     string `yaml:"format" validate:"omitempty,oneof=console json"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB" validate:"gte=0"`
	MaxBackups int    `yaml:"maxBackups" validate:"gte=0"`
	MaxAgeDays int    `yaml:"maxAgeDays" validate:"gte=0"`
	Compress   bool   `yaml:"compress"`
}

// ExiftoolConfig locates the exiftool binary. Empty Path searches PATH.
type ExiftoolConfig struct {
	Path string `yaml:"path"`
}

// JournalConfig enables the run journal when Path is set.
type JournalConfig struct {
	Path string `yaml:"path"`
}

// S3Config contains the object store used for s3:// track URLs
type S3Config struct {
	Endpoint  string `yaml:"endpoint" validate:"omitempty,hostname_port"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	UseSSL    bool   `yaml:"useSSL"`
	Region    string `yaml:"region"`
}

// GTFSRTConfig contains GTFS-Realtime track source configuration
type GTFSRTConfig struct {
	VehicleID string `yaml:"vehicleID"`
}

// FetchConfig contains track download configuration
type FetchConfig struct {
	TimeoutMS int `yaml:"timeoutMS" validate:"gte=0"`
}

// WatchConfig contains watch mode configuration
type WatchConfig struct {
	SettleMS int `yaml:"settleMS" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Tagging  TaggingConfig  `yaml:"tagging"`
	Log      LogConfig      `yaml:"log"`
	Exiftool ExiftoolConfig `yaml:"exiftool"`
	Journal  JournalConfig  `yaml:"journal"`
	S3       S3Config       `yaml:"s3"`
	GTFSRT   GTFSRTConfig   `yaml:"gtfsrt"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Watch    WatchConfig    `yaml:"watch"`
}

// Seconds converts fractional seconds to a Duration, rounded to the
// nanosecond.
func Seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
