package storage

import "errors"

var (
	ErrRunNotFound   = errors.New("storage: run not found")
	ErrUnknownColumn = errors.New("storage: unknown column")
)
