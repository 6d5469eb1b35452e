package mapillarytools

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Nakaner/mapillary-tools/geo"
	"github.com/Nakaner/mapillary-tools/metadata"
	"github.com/Nakaner/mapillary-tools/subsec"
	"github.com/Nakaner/mapillary-tools/track"
	"github.com/Nakaner/mapillary-tools/utils"
)

// Options are the per-batch parameters of a Tagger.
type Options struct {
	// ClockOffset is subtracted from every capture time to get the track
	// time. A camera running one minute ahead of the track needs +60s.
	ClockOffset time.Duration
	// Interval is the time between consecutive shots. Zero disables
	// sub-second estimation.
	Interval time.Duration
	// BearingOffset is added to every bearing, in degrees. 180 for photos
	// taken facing backwards.
	BearingOffset float64
}

// Recorder persists run results. Errors from a Recorder are logged and do not
// stop the run.
type Recorder interface {
	StartRun(runID string, started time.Time, images int, opts Options) error
	RecordTagged(runID string, t Tagged) error
	RecordSkipped(runID string, s Skip) error
	FinishRun(runID string, finished time.Time) error
}

// Tagger geotags images against one loaded track.
type Tagger struct {
	track  *track.Track
	reader metadata.Reader
	writer metadata.Writer
	opts   Options
	log    *zap.Logger
	rec    Recorder
}

// NewTagger creates a Tagger. A nil logger discards log output.
func NewTagger(trk *track.Track, r metadata.Reader, w metadata.Writer, opts Options, log *zap.Logger) *Tagger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tagger{track: trk, reader: r, writer: w, opts: opts, log: log}
}

// WithRecorder attaches a Recorder and returns the Tagger.
func (t *Tagger) WithRecorder(rec Recorder) *Tagger {
	t.rec = rec
	return t
}

type pending struct {
	img Image
	err error
}

// Run geotags paths in order. It fails without touching any image when the
// capture times are incompatible with the configured interval; all other
// problems are reported per image in the returned Report.
func (t *Tagger) Run(paths []string) (*Report, error) {
	rep := &Report{RunID: uuid.NewString(), Started: time.Now()}

	batch := make([]pending, len(paths))
	samples := make([]subsec.Sample, 0, len(paths))
	for i, p := range paths {
		batch[i].img = Image{Path: p, Index: i}
		ct, err := t.reader.CaptureTime(p)
		if err != nil {
			batch[i].err = fmt.Errorf("read capture time: %w", err)
			continue
		}
		batch[i].img.CaptureTime = ct
		samples = append(samples, subsec.Sample{Index: i, Recorded: ct})
	}

	refined, err := subsec.EstimateSamples(samples, t.opts.Interval)
	if err != nil {
		return nil, fmt.Errorf("estimate sub-second capture times: %w", err)
	}
	for i, s := range samples {
		batch[s.Index].img.RefinedTime = refined[i]
	}

	t.log.Info("Starting geotagging",
		zap.String("run_id", rep.RunID),
		zap.Int("images", len(paths)),
		zap.Duration("clock_offset", t.opts.ClockOffset),
		zap.Duration("interval", t.opts.Interval),
		zap.Float64("bearing_offset", t.opts.BearingOffset))
	if t.rec != nil {
		if err := t.rec.StartRun(rep.RunID, rep.Started, len(paths), t.opts); err != nil {
			t.log.Warn("Journal unavailable", zap.Error(err))
		}
	}

	for _, p := range batch {
		if p.err != nil {
			t.skip(rep, Skip{Path: p.img.Path, Reason: p.err})
			continue
		}
		tagged, err := t.tag(p.img)
		if err != nil {
			t.skip(rep, Skip{Path: p.img.Path, Reason: err})
			continue
		}
		rep.Tagged = append(rep.Tagged, tagged)
		if t.rec != nil {
			if err := t.rec.RecordTagged(rep.RunID, tagged); err != nil {
				t.log.Warn("Journal write failed", zap.String("path", tagged.Path), zap.Error(err))
			}
		}
	}

	rep.Finished = time.Now()
	if t.rec != nil {
		if err := t.rec.FinishRun(rep.RunID, rep.Finished); err != nil {
			t.log.Warn("Journal write failed", zap.Error(err))
		}
	}
	return rep, nil
}

// TagOne geotags a single image using its recorded capture time. A per-image
// failure is returned as *Skip.
func (t *Tagger) TagOne(path string) (Tagged, error) {
	ct, err := t.reader.CaptureTime(path)
	if err != nil {
		return Tagged{}, t.skipOne(path, fmt.Errorf("read capture time: %w", err))
	}
	tagged, err := t.tag(Image{Path: path, CaptureTime: ct, RefinedTime: ct})
	if err != nil {
		return Tagged{}, t.skipOne(path, err)
	}
	return tagged, nil
}

func (t *Tagger) skipOne(path string, reason error) *Skip {
	t.log.Warn("Skipping image", zap.String("path", path), zap.Error(reason))
	return &Skip{Path: path, Reason: reason}
}

func (t *Tagger) tag(img Image) (Tagged, error) {
	q := img.RefinedTime.Add(-t.opts.ClockOffset)
	fix, err := t.track.Interpolate(q)
	if err != nil {
		return Tagged{}, err
	}
	fix.Bearing = geo.NormalizeBearing(fix.Bearing, t.opts.BearingOffset)

	if err := t.writer.WriteGPS(img.Path, metadata.EncodeFix(fix)); err != nil {
		return Tagged{}, err
	}

	t.log.Debug("Added geodata",
		zap.String("path", img.Path),
		zap.String("time", utils.Iso8601(img.RefinedTime)),
		zap.Float64("lat", fix.Latitude),
		zap.Float64("lon", fix.Longitude),
		zap.Float64p("alt", fix.Elevation),
		zap.Float64("bearing", fix.Bearing))
	return Tagged{Image: img, QueryTime: q, Fix: fix}, nil
}

func (t *Tagger) skip(rep *Report, s Skip) {
	t.log.Warn("Skipping image", zap.String("path", s.Path), zap.Error(s.Reason))
	rep.Skipped = append(rep.Skipped, s)
	if t.rec != nil {
		if err := t.rec.RecordSkipped(rep.RunID, s); err != nil {
			t.log.Warn("Journal write failed", zap.String("path", s.Path), zap.Error(err))
		}
	}
}
