package placement

import "errors"

var (
	// ErrAssetLoadFailed wraps the cause when the model or the control could not be resolved
	// (including the placement timeout). Nothing is added to the scene.
	ErrAssetLoadFailed = errors.New("placement: asset load failed")
	// ErrNoSelection is returned when placement is requested before any model was selected.
	ErrNoSelection = errors.New("placement: no model selected")
	// ErrInvalidAnchor is returned when the anchor is missing or stopped tracking before
	// the placement was finalized.
	ErrInvalidAnchor = errors.New("placement: anchor is not tracking")
	// ErrNotFound is returned for handles that were never placed or were already removed.
	ErrNotFound = errors.New("placement: object not found")
	// ErrCanceled is returned when a newer request for the same anchor, Close, or the
	// caller's context cancelled the placement.
	ErrCanceled = errors.New("placement: request canceled")
)
