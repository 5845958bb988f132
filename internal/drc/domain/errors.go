package domain

import "errors"

var (
	ErrMalformedDiagram = errors.New("malformed architecture diagram")
	ErrReportNotFound   = errors.New("drc report not found")
)
