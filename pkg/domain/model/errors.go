package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for domain operations
var (
	ErrCapabilityNotFound = goerr.New("capability not found")
	ErrDatasetNotFound    = goerr.New("dataset not found")
	ErrInvalidFilter      = goerr.New("invalid filter")
	ErrInvalidOverlay     = goerr.New("invalid overlay")
	ErrReportNotFound     = goerr.New("report not found")
	ErrInvalidReport      = goerr.New("invalid report request")
)
