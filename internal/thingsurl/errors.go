package thingsurl

import "errors"

var (
	ErrInvalid      = errors.New("invalid")
	ErrAuthRequired = errors.New("authentication required")
	ErrParse        = errors.New("parse error")
)
