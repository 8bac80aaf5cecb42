package types

import "errors"

var (
	ErrUnsupportedConfigFormat = errors.New("unsupported config file format")
	ErrNothingToExport         = errors.New("report has no data to export")
	// ErrRequestFailed marks a command whose backend call did not succeed.
	ErrRequestFailed = errors.New("backend request failed")
)
