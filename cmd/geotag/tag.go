package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	lib "github.com/Nakaner/mapillary-tools"
)

func newTagCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag PATH TRACK [TRACK...]",
		Short: "Geotag an image or a directory of images",
		Long: `Reads the capture time of every JPEG under PATH, interpolates a position
on the track and writes GPS latitude, longitude, altitude and image direction.
TRACK is a GPX file or GTFS-Realtime VehiclePositions snapshot given as a
local path, an http(s) URL or an s3://bucket/key object.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTag(cmd, o, args[0], args[1:])
		},
	}
	fs := cmd.Flags()
	addTaggingFlags(fs, o)
	fs.Float64Var(&o.interval, "interval", 0, "seconds between shots, enables sub-second capture times")
	fs.BoolVarP(&o.recurse, "recurse", "r", false, "search PATH recursively")
	return cmd
}

func runTag(cmd *cobra.Command, o *options, path string, tracks []string) error {
	cfg, log, err := o.load(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	images, err := lib.FindImages(path, cfg.Tagging.Recurse)
	if err != nil {
		return err
	}
	if len(images) == 0 {
		log.Warn("No images found", zap.String("path", path))
		return nil
	}

	s, err := openSession(cmd.Context(), cfg, log, tracks)
	if err != nil {
		return err
	}
	defer s.Close()

	rep, err := s.tagger().Run(images)
	if err != nil {
		return err
	}
	log.Info("Done geotagging",
		zap.Int("images", rep.Total()),
		zap.Int("tagged", len(rep.Tagged)),
		zap.Int("skipped", len(rep.Skipped)),
		zap.Duration("elapsed", rep.Elapsed()),
		zap.String("run_id", rep.RunID))
	return nil
}
