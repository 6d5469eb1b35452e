package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	lib "github.com/Nakaner/mapillary-tools"
	"github.com/Nakaner/mapillary-tools/watch"
)

func newWatchCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch DIR TRACK [TRACK...]",
		Short: "Geotag images as they appear in a directory",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, o, args[0], args[1:])
		},
	}
	addTaggingFlags(cmd.Flags(), o)
	return cmd
}

func runWatch(cmd *cobra.Command, o *options, dir string, tracks []string) error {
	cfg, log, err := o.load(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := openSession(ctx, cfg, log, tracks)
	if err != nil {
		return err
	}
	defer s.Close()

	run := &watchRun{id: uuid.NewString(), tagger: s.tagger(), log: log}
	if s.journal != nil {
		run.rec = s.journal
	}
	run.start(taggerOptions(cfg))

	w, err := watch.New(dir, lib.IsJPEG, run.handle, log)
	if err != nil {
		return err
	}
	w.Settle = time.Duration(cfg.Watch.SettleMS) * time.Millisecond

	err = w.Run(ctx)
	run.finish()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// watchRun tags images one at a time and journals each result when a
// Recorder is attached.
type watchRun struct {
	id      string
	tagger  *lib.Tagger
	rec     lib.Recorder
	log     *zap.Logger
	tagged  int
	skipped int
}

func (r *watchRun) start(opts lib.Options) {
	if r.rec == nil {
		return
	}
	if err := r.rec.StartRun(r.id, time.Now(), 0, opts); err != nil {
		r.log.Warn("Journal unavailable", zap.Error(err))
	}
}

func (r *watchRun) handle(path string) {
	t, err := r.tagger.TagOne(path)
	if err != nil {
		r.skipped++
		var skip *lib.Skip
		if r.rec != nil && errors.As(err, &skip) {
			r.journalErr(path, r.rec.RecordSkipped(r.id, *skip))
		}
		return
	}
	r.tagged++
	r.log.Info("Tagged image", zap.String("path", path))
	if r.rec != nil {
		r.journalErr(path, r.rec.RecordTagged(r.id, t))
	}
}

func (r *watchRun) finish() {
	if r.rec != nil {
		r.journalErr("", r.rec.FinishRun(r.id, time.Now()))
	}
	r.log.Info("Stopped watching", zap.Int("tagged", r.tagged), zap.Int("skipped", r.skipped))
}

func (r *watchRun) journalErr(path string, err error) {
	if err == nil {
		return
	}
	if path == "" {
		r.log.Warn("Journal write failed", zap.Error(err))
		return
	}
	r.log.Warn("Journal write failed", zap.String("path", path), zap.Error(err))
}
