package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidGridShape  = errors.New("suppression shape does not match grid")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrEpisodeTerminated = errors.New("episode is terminated")
	ErrNotReset          = errors.New("episode has not been reset")
)

// ConfigError describes a rejected configuration parameter. It matches ErrInvalidConfig.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// ShapeError reports the dimensions involved in a shape mismatch. It matches ErrInvalidGridShape.
type ShapeError struct {
	GridSize        int
	SuppressionSize int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: grid %dx%d, suppression %dx%d",
		ErrInvalidGridShape, e.GridSize, e.GridSize, e.SuppressionSize, e.SuppressionSize)
}

func (e *ShapeError) Unwrap() error { return ErrInvalidGridShape }
