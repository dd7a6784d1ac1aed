package validate

import "errors"

var (
	ErrInvalidTitle    = errors.New("invalid title")
	ErrTitleTooLong    = errors.New("title too long")
	ErrInvalidVersion  = errors.New("invalid version name")
	ErrInvalidLabel    = errors.New("invalid tab label")
	ErrInvalidFile     = errors.New("invalid file name")
	ErrPathTooLong     = errors.New("storage path too long")
	ErrContentTooLarge = errors.New("content too large")
)
