package models

import "errors"

var (
	// ErrMatchNotFound is returned when a match id is not in the registry.
	ErrMatchNotFound = errors.New("match not found")

	// ErrEmptyCategory is returned when a category has no metrics to average.
	ErrEmptyCategory = errors.New("category has no metrics")

	// ErrArchiveDisabled is returned by history lookups when no archive is configured.
	ErrArchiveDisabled = errors.New("match archive not configured")
)
