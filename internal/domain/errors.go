package domain

import "errors"

var (
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidTile      = errors.New("invalid tile value")
	ErrInvalidDepth     = errors.New("invalid search depth")
)
