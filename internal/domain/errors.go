package domain

import "errors"

var (
	ErrNotFound         = errors.New("resource not found")
	ErrConflict         = errors.New("resource conflict")
	ErrSessionNotActive = errors.New("no active sleep session")
	ErrOutsideWindow    = errors.New("outside the allowed sleep window")
	ErrInvalidInput     = errors.New("invalid input")
)
