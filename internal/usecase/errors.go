package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrAuthRequired          = errors.New("authentication required")
	ErrCrawlFailed           = errors.New("schedule crawl failed")
	ErrDataUnavailable       = errors.New("schedule data unavailable")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
