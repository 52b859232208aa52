package domain

import "errors"

var (
	// ErrDatasetNotFound signals a missing edge data file.
	ErrDatasetNotFound = errors.New("dataset not found")
	// ErrDatasetMalformed signals a data file that cannot be decoded as a record sequence.
	ErrDatasetMalformed = errors.New("dataset malformed")
	// ErrUnsupportedFormat signals a data file extension without a decoder.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	// ErrAssetNotFound signals a missing overlay model.
	ErrAssetNotFound = errors.New("asset not found")
	// ErrArcNotFound signals an arc index outside the scene.
	ErrArcNotFound = errors.New("arc not found")
	// ErrSceneNotReady signals that the scene is still loading.
	ErrSceneNotReady = errors.New("scene not ready")
	// ErrSceneBuildFailed signals that loading or building the scene failed.
	ErrSceneBuildFailed = errors.New("scene build failed")
	// ErrInvalidViewport signals non-positive viewport dimensions.
	ErrInvalidViewport = errors.New("invalid viewport")
)
