package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	lib "github.com/Nakaner/mapillary-tools"
	"github.com/Nakaner/mapillary-tools/config"
	"github.com/Nakaner/mapillary-tools/journal"
	"github.com/Nakaner/mapillary-tools/metadata"
	"github.com/Nakaner/mapillary-tools/track"
)

// session holds what tag and watch share: the loaded track, the exiftool
// process and the optional journal.
type session struct {
	cfg     config.AppConfig
	log     *zap.Logger
	loc     *time.Location
	track   *track.Track
	exif    *metadata.Exiftool
	journal *journal.DB
}

// trackLocation returns the zone for reading wall-clock times.
func trackLocation(localTime bool, log *zap.Logger) *time.Location {
	if !localTime {
		return time.UTC
	}
	zone, offset := time.Now().Zone()
	log.Warn("Using local time for track and capture times, check that it matches where the images were taken",
		zap.String("zone", zone),
		zap.Duration("utc_offset", time.Duration(offset)*time.Second))
	return time.Local
}

func openSession(ctx context.Context, cfg config.AppConfig, log *zap.Logger, sources []string) (*session, error) {
	s := &session{cfg: cfg, log: log, loc: trackLocation(cfg.Tagging.LocalTime, log)}

	trk, err := loadTrack(ctx, newFetcher(fetchTimeout(cfg), cfg.S3), s.loader(), cfg.GTFSRT.VehicleID, sources, log)
	if err != nil {
		return nil, err
	}
	s.track = trk

	s.exif, err = metadata.NewExiftool(cfg.Exiftool.Path, s.loc)
	if err != nil {
		return nil, err
	}

	if cfg.Journal.Path != "" {
		s.journal, err = journal.New(cfg.Journal.Path)
		if err != nil {
			s.exif.Close()
			return nil, err
		}
	}
	return s, nil
}

func (s *session) loader() track.Loader {
	if s.cfg.Tagging.LocalTime {
		return track.Loader{Location: s.loc}
	}
	return track.Loader{}
}

func (s *session) tagger() *lib.Tagger {
	t := lib.NewTagger(s.track, s.exif, s.exif, taggerOptions(s.cfg), s.log)
	if s.journal != nil {
		t.WithRecorder(s.journal)
	}
	return t
}

func (s *session) Close() {
	if s.journal != nil {
		if err := s.journal.Close(); err != nil {
			s.log.Warn("Closing journal", zap.Error(err))
		}
	}
	if err := s.exif.Close(); err != nil {
		s.log.Warn("Closing exiftool", zap.Error(err))
	}
}

// loadTrack fetches and decodes every source into one track.
func loadTrack(ctx context.Context, f *fetcher, loader track.Loader, vehicle string, sources []string, log *zap.Logger) (*track.Track, error) {
	samples := make([]track.Samples, 0, len(sources))
	for _, src := range sources {
		data, err := f.fetch(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("track %s: %w", src, err)
		}
		s, err := lib.DecodeTrack(src, data, vehicle)
		if err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}

	trk, err := loader.Load(samples...)
	if err != nil {
		return nil, err
	}
	log.Info("Loaded track",
		zap.Int("points", trk.Len()),
		zap.Time("start", trk.Start()),
		zap.Time("end", trk.End()),
		zap.Float64("length_km", trk.LengthKM()))
	return trk, nil
}
