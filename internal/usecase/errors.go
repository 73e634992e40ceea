package usecase

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrModelUnavailable = errors.New("model unavailable")
	ErrInternal         = errors.New("internal error")
)
