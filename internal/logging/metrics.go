package logging

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"

	"framesense/internal/explore"
	"framesense/internal/logger"
)

// Recorder writes per-episode coverage telemetry to CSV and JSON lines
type Recorder struct {
	csvPath     string
	jsonPath    string
	csvFile     *os.File
	csvWriter   *csv.Writer
	jsonFile    *os.File
	log         *logrus.Entry
	initialized bool
}

// NewRecorder creates a recorder, making sure the output directories exist
func NewRecorder(csvPath, jsonPath string) (*Recorder, error) {
	r := &Recorder{
		csvPath:  csvPath,
		jsonPath: jsonPath,
		log:      logger.For("telemetry"),
	}

	if err := os.MkdirAll(filepath.Dir(csvPath), 0755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(jsonPath), 0755); err != nil {
		return nil, err
	}

	return r, nil
}

// Init opens the output files and writes the CSV header
func (r *Recorder) Init() error {
	var err error

	r.csvFile, err = os.Create(r.csvPath)
	if err != nil {
		return err
	}
	r.csvWriter = csv.NewWriter(r.csvFile)

	header := []string{
		"episode", "steps", "empty_steps", "visited", "scanned",
		"hostile_steps", "portal_steps", "fraction",
	}
	if err := r.csvWriter.Write(header); err != nil {
		return err
	}

	r.jsonFile, err = os.OpenFile(r.jsonPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	r.initialized = true
	return nil
}

// Close flushes and closes all output files
func (r *Recorder) Close() error {
	var firstErr error
	if r.csvWriter != nil {
		r.csvWriter.Flush()
		firstErr = r.csvWriter.Error()
	}
	if r.csvFile != nil {
		if err := r.csvFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if r.jsonFile != nil {
		if err := r.jsonFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	r.initialized = false
	return firstErr
}

// LogEpisode appends one episode summary to both outputs
func (r *Recorder) LogEpisode(ep explore.EpisodeCoverage) error {
	if !r.initialized {
		return fmt.Errorf("recorder for %s is not initialized", r.csvPath)
	}

	row := []string{
		strconv.Itoa(ep.Episode),
		strconv.Itoa(ep.Steps),
		strconv.Itoa(ep.EmptySteps),
		strconv.Itoa(ep.Visited),
		strconv.Itoa(ep.Scanned),
		strconv.Itoa(ep.HostileSteps),
		strconv.Itoa(ep.PortalSteps),
		fmt.Sprintf("%.4f", ep.Fraction),
	}
	if err := r.csvWriter.Write(row); err != nil {
		return err
	}
	r.csvWriter.Flush()
	if err := r.csvWriter.Error(); err != nil {
		return err
	}

	jsonLine, err := json.Marshal(ep)
	if err != nil {
		return err
	}
	if _, err := r.jsonFile.Write(append(jsonLine, '\n')); err != nil {
		return err
	}

	r.log.WithFields(logrus.Fields{
		"episode":  ep.Episode,
		"steps":    ep.Steps,
		"visited":  ep.Visited,
		"scanned":  ep.Scanned,
		"fraction": ep.Fraction,
	}).Info("Episode coverage recorded.")
	return nil
}

// LogSummary reports aggregate coverage across episodes
func (r *Recorder) LogSummary(agg explore.AggregatedCoverage) {
	if agg.NumEpisodes == 0 {
		return
	}
	r.log.WithFields(logrus.Fields{
		"episodes":      agg.NumEpisodes,
		"visited_mean":  agg.VisitedMean,
		"scanned_mean":  agg.ScannedMean,
		"fraction_mean": agg.FractionMean,
		"fraction_std":  agg.FractionStd,
		"empty_rate":    agg.EmptyRate,
	}).Info("Coverage summary.")
}
