package cache

import "errors"

var ErrEmptyUser = errors.New("cache: username is required")
