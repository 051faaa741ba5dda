package config

import "errors"

var (
	ErrInvalid       = errors.New("config: invalid value")
	ErrUnknownMode   = errors.New("config: unknown mode")
	ErrUnknownFormat = errors.New("config: unknown format")
	ErrUnknownTheme  = errors.New("config: unknown theme")
	ErrNoSource      = errors.New("config: either a user or demo data is required")
)
