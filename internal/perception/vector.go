package perception

import (
	"errors"

	"framesense/internal/config"
)

// VectorSize is the length of the feature vector
const VectorSize = 16

// ErrEmptyState is returned when features are requested for an empty State
var ErrEmptyState = errors.New("state is empty")

// VectorBuilder builds the policy feature vector from a State
type VectorBuilder struct {
	epsilon     float64
	maxHostiles float64
	buffer      []float32
}

// NewVectorBuilder creates a builder using the configured normalization
func NewVectorBuilder(cfg *config.Config) *VectorBuilder {
	return &VectorBuilder{
		epsilon:     cfg.Vector.Epsilon,
		maxHostiles: float64(cfg.Classifier.MaxHostiles),
		buffer:      make([]float32, VectorSize),
	}
}

// Build fills the feature vector for s.
// Returns a slice that should not be modified (internal buffer); it is
// overwritten by the next call.
//
// Layout: agent row/col, wall distances up/down/left/right, their inverses,
// hostile row/col and visibility, hostile count, portal row/col. Rows are
// divided by the grid height and columns by the grid width.
func (b *VectorBuilder) Build(s *State) ([]float32, error) {
	if s.Empty || s.Area() == 0 {
		return nil, ErrEmptyState
	}
	h, w := float64(s.Height()), float64(s.Width())
	center := s.Center()

	up := float64(center.Row-s.Up.Row) / h
	down := float64(s.Down.Row-center.Row) / h
	left := float64(center.Col-s.Left.Col) / w
	right := float64(s.Right.Col-center.Col) / w

	b.buffer[0] = float32(float64(center.Row) / h)
	b.buffer[1] = float32(float64(center.Col) / w)

	b.buffer[2] = float32(up)
	b.buffer[3] = float32(down)
	b.buffer[4] = float32(left)
	b.buffer[5] = float32(right)

	b.buffer[6] = float32(b.inverse(up))
	b.buffer[7] = float32(b.inverse(down))
	b.buffer[8] = float32(b.inverse(left))
	b.buffer[9] = float32(b.inverse(right))

	b.buffer[10], b.buffer[11] = normalized(s.Hostile, h, w)
	b.buffer[12] = boolToFloat(s.Hostile.Visible)
	b.buffer[13] = 0
	if b.maxHostiles > 0 {
		b.buffer[13] = float32(float64(s.Hostiles) / b.maxHostiles)
	}
	b.buffer[14], b.buffer[15] = normalized(s.Portal, h, w)

	return b.buffer, nil
}

// inverse grows as a wall gets closer while staying finite at distance zero
func (b *VectorBuilder) inverse(dist float64) float64 {
	return 1.0 / (dist + b.epsilon)
}

func normalized(s Sighting, h, w float64) (float32, float32) {
	if !s.Visible {
		return 0, 0
	}
	return float32(float64(s.Row) / h), float32(float64(s.Col) / w)
}

func boolToFloat(b bool) float32 {
	if b {
		return 1.0
	}
	return 0.0
}
