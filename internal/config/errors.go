package config

import "errors"

var (
	ErrReadConfig    = errors.New("config: failed to read config")
	ErrInvalidConfig = errors.New("config: invalid config")
)
