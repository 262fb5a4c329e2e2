package common

import "errors"

var (
	// ErrInvalidGeometryParameter is returned by geometry generators for malformed inputs.
	ErrInvalidGeometryParameter = errors.New("invalid geometry parameter")
	// ErrAssetLoadFailure marks an icon or texture that could not be loaded; callers keep the placeholder.
	ErrAssetLoadFailure = errors.New("asset load failure")
	// ErrResolutionConflict marks an unknown preset or responsive context; the resolver falls back to the first preset.
	ErrResolutionConflict = errors.New("layout resolution conflict")
	// ErrPickingOutOfBounds marks a pointer event outside the render surface.
	ErrPickingOutOfBounds = errors.New("pointer outside render surface")
	// ErrInvalidEntity is returned when catalog data fails validation at ingestion.
	ErrInvalidEntity = errors.New("invalid catalog entity")
)
