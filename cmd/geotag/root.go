package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	lib "github.com/Nakaner/mapillary-tools"
	"github.com/Nakaner/mapillary-tools/config"
	"github.com/Nakaner/mapillary-tools/internal/logging"
)

// options collects the command-line flags. Flags that were set win over the
// loaded configuration.
type options struct {
	configPath    string
	verbose       bool
	timeOffset    float64
	interval      float64
	localTime     bool
	recurse       bool
	bearingOffset float64
	vehicle       string
	journal       string
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "geotag",
		Short:         "Geotag JPEG images from a GPX track or GTFS-Realtime vehicle positions.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&o.configPath, "config", "", "config file (default geotag.yml if present)")
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "log every tagged image")

	root.AddCommand(newTagCmd(o), newWatchCmd(o))
	return root
}

// addTaggingFlags registers the flags shared by tag and watch.
func addTaggingFlags(fs *pflag.FlagSet, o *options) {
	fs.Float64Var(&o.timeOffset, "time-offset", 0, "seconds subtracted from capture times to match the track clock")
	fs.BoolVar(&o.localTime, "localtime", false, "read track and capture times in the host time zone instead of UTC")
	fs.Float64VarP(&o.bearingOffset, "bearing-offset", "b", 0, "degrees added to the direction of travel")
	fs.StringVar(&o.vehicle, "gtfsrt-vehicle", "", "vehicle id to follow in GTFS-Realtime tracks")
	fs.StringVar(&o.journal, "journal", "", "sqlite file recording every run")
}

// load reads the configuration, applies changed flags and builds the logger.
func (o *options) load(cmd *cobra.Command) (config.AppConfig, *zap.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.AppConfig{}, nil, err
	}

	flags := cmd.Flags()
	t := &cfg.Tagging
	if flags.Changed("time-offset") {
		t.TimeOffset = o.timeOffset
	}
	if flags.Changed("interval") {
		t.Interval = o.interval
	}
	if flags.Changed("localtime") {
		t.LocalTime = o.localTime
	}
	if flags.Changed("recurse") {
		t.Recurse = o.recurse
	}
	if flags.Changed("bearing-offset") {
		t.BearingOffset = o.bearingOffset
	}
	if flags.Changed("gtfsrt-vehicle") {
		cfg.GTFSRT.VehicleID = o.vehicle
	}
	if flags.Changed("journal") {
		cfg.Journal.Path = o.journal
	}
	if o.verbose {
		cfg.Log.Level = "debug"
	}

	log, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return config.AppConfig{}, nil, err
	}
	return cfg, log, nil
}

func taggerOptions(cfg config.AppConfig) lib.Options {
	return lib.Options{
		ClockOffset:   cfg.Tagging.ClockOffset(),
		Interval:      cfg.Tagging.ShotInterval(),
		BearingOffset: cfg.Tagging.BearingOffset,
	}
}

func fetchTimeout(cfg config.AppConfig) time.Duration {
	return time.Duration(cfg.Fetch.TimeoutMS) * time.Millisecond
}
