package importer

import "errors"

// Sentinel kinds for import errors.
var (
	ErrBadRow    = errors.New("bad score sheet row")
	ErrBadHeader = errors.New("bad score sheet header")
)
