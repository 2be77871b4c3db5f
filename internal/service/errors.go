package service

import "errors"

var (
	ErrInvalidRecord       = errors.New("invalid exercise record")
	ErrInvalidProfile      = errors.New("invalid profile")
	ErrMissingMeasurements = errors.New("height and weight are not set")
	ErrEmptyMessage        = errors.New("message is empty")
	ErrUnknownExercise     = errors.New("unknown exercise")
)
