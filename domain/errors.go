package domain

import "errors"

var (
	// ErrNotFound is returned when a product code is absent from the similarity table.
	ErrNotFound = errors.New("product not found")

	// ErrModelUnavailable is returned when the scaler or clustering model cannot produce a prediction.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrStartupFailure marks an artifact that could not be loaded at process start.
	ErrStartupFailure = errors.New("artifact startup failure")
)
