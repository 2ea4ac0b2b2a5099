package errors

import "errors"

var (
	ErrNoData            = errors.New("no data available for export")
	ErrInvalidExportType = errors.New("invalid export type")
)
