package batch

import (
	"context"
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"framesense/internal/config"
	"framesense/internal/explore"
	"framesense/internal/frame"
	"framesense/internal/logger"
	"framesense/internal/perception"
)

// Result is the perception outcome of one frame
type Result struct {
	Features []float32 // nil when Empty
	Empty    bool
	Hostiles int
}

// Extractor runs the perception pipeline over recorded frames
type Extractor struct {
	cfg       *config.Config
	perceiver *perception.Perceiver
	workers   int
	log       *logrus.Entry
}

// NewExtractor creates an extractor with a bounded worker pool
func NewExtractor(cfg *config.Config) *Extractor {
	workers := cfg.Batch.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Extractor{
		cfg:       cfg,
		perceiver: perception.NewPerceiver(cfg),
		workers:   workers,
		log:       logger.For("batch"),
	}
}

// ExtractAll perceives independent frames concurrently and returns their
// results in input order. The first pipeline error cancels the remaining work.
func (e *Extractor) ExtractAll(ctx context.Context, frames []*frame.Frame) ([]Result, error) {
	results := make([]Result, len(frames))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(e.workers)

	for i, f := range frames {
		i, f := i, f // per-iteration copy (go directive < 1.22)
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			// Builders reuse their buffer, so each frame gets its own.
			res, err := e.extract(f, perception.NewVectorBuilder(e.cfg))
			if err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{"frames": len(frames), "workers": e.workers}).Debug("Batch extraction complete.")
	return results, nil
}

// RunEpisode perceives the frames of one episode in order, feeding every
// state to a fresh exploration tracker, and returns per-frame results with
// the episode's coverage summary.
func (e *Extractor) RunEpisode(ctx context.Context, episode int, frames []*frame.Frame) ([]Result, explore.EpisodeCoverage, error) {
	tracker := explore.NewTracker(e.cfg.Tracker.Height, e.cfg.Tracker.Width, e.cfg.Scan)
	builder := perception.NewVectorBuilder(e.cfg)
	summary := explore.EpisodeCoverage{Episode: episode}
	results := make([]Result, 0, len(frames))

	for i, f := range frames {
		i, f := i, f // per-iteration copy (go directive < 1.22)
		if err := ctx.Err(); err != nil {
			return nil, summary, err
		}
		s, err := e.perceiver.Perceive(f)
		if err != nil {
			return nil, summary, fmt.Errorf("episode %d frame %d: %w", episode, i, err)
		}
		visited, scanned := tracker.Cover(s)
		summary.Observe(s, visited, scanned)

		res, err := toResult(s, builder)
		if err != nil {
			return nil, summary, fmt.Errorf("episode %d frame %d: %w", episode, i, err)
		}
		results = append(results, res)
	}

	summary.Fraction = tracker.Fraction()
	return results, summary, nil
}

func (e *Extractor) extract(f *frame.Frame, builder *perception.VectorBuilder) (Result, error) {
	s, err := e.perceiver.Perceive(f)
	if err != nil {
		return Result{}, err
	}
	return toResult(s, builder)
}

func toResult(s *perception.State, builder *perception.VectorBuilder) (Result, error) {
	res := Result{Empty: s.Empty, Hostiles: s.Hostiles}
	if s.Empty {
		return res, nil
	}
	v, err := builder.Build(s)
	if err != nil {
		return Result{}, err
	}
	res.Features = append([]float32(nil), v...)
	return res, nil
}
