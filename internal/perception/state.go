package perception

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"framesense/internal/config"
	"framesense/internal/frame"
	"framesense/internal/logger"
)

// State is the symbolic description of one frame.
// When Empty is true the agent was not found: Box, the wall contacts and the
// sightings are zero values and no feature vector can be built.
type State struct {
	Grid *Grid
	Box  Box
	ScanResult

	HostilePixels int
	Hostiles      int // estimated hostile entities
	Empty         bool

	Fill     FillReport
	Warnings []error
}

// Height returns the trimmed grid height
func (s *State) Height() int {
	if s.Grid == nil {
		return 0
	}
	return s.Grid.Height
}

// Width returns the trimmed grid width
func (s *State) Width() int {
	if s.Grid == nil {
		return 0
	}
	return s.Grid.Width
}

// Area returns the number of cells in the trimmed grid
func (s *State) Area() int {
	return s.Height() * s.Width()
}

// Perceiver turns raw frames into States. It holds only read-only
// configuration, so one Perceiver may serve many goroutines.
type Perceiver struct {
	cfg *config.Config
	log *logrus.Entry
}

// NewPerceiver creates a perceiver for the given configuration
func NewPerceiver(cfg *config.Config) *Perceiver {
	return &Perceiver{
		cfg: cfg,
		log: logger.For("perception"),
	}
}

// Config returns the configuration the perceiver was built with
func (p *Perceiver) Config() *config.Config {
	return p.cfg
}

// Perceive runs the full pipeline on one frame: trim, classify, repair the
// border, locate the agent and scan for walls.
// An invisible agent yields an empty State, not an error. A scan that cannot
// resolve every direction is returned as an error.
func (p *Perceiver) Perceive(f *frame.Frame) (*State, error) {
	trimmed := frame.Trim(f, p.cfg.Palette.Empty)
	if trimmed.Empty() {
		p.log.WithFields(logrus.Fields{"height": f.Height, "width": f.Width}).Debug("Frame is empty after trimming.")
		return &State{Grid: NewGrid(0, 0), Empty: true}, nil
	}

	grid, hostilePixels := Classify(trimmed, p.cfg.Palette)
	s := &State{
		HostilePixels: hostilePixels,
		Hostiles:      EstimateHostiles(hostilePixels, p.cfg.Classifier.AvgPixelsPerHostile),
	}

	repaired, report, err := Reconstruct(grid, p.cfg.Border)
	switch {
	case err != nil:
		p.log.WithError(err).Warn("Border reconstruction failed, keeping unrepaired grid.")
		s.Warnings = append(s.Warnings, err)
		repaired = grid
	case report.Skipped:
		p.log.WithField("reason", report.Reason).Debug("Border reconstruction skipped.")
	case report.Filled > 0:
		p.log.WithFields(logrus.Fields{
			"wall_breaks": report.WallBreaks,
			"portals":     report.Portals,
			"filled":      report.Filled,
		}).Debug("Border gaps filled.")
	}
	s.Grid = repaired
	s.Fill = report

	box, ok := LocateAgent(repaired)
	if !ok {
		p.log.Debug("No agent cells, state is empty.")
		s.Empty = true
		return s, nil
	}
	s.Box = box

	scan, err := Scan(repaired, box, p.cfg.Scan)
	if err != nil {
		return nil, fmt.Errorf("scan from box %+v: %w", box, err)
	}
	s.ScanResult = scan
	return s, nil
}
