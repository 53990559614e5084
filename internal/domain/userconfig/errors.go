package userconfig

import "errors"

// UserConfig domain errors
var (
	ErrConfigNotFound = errors.New("user config not found")
	ErrUnauthorized   = errors.New("unauthorized to access this user config")
)
