package model

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid assessment input")
	ErrMissingRequired = errors.New("missing required field")
)
