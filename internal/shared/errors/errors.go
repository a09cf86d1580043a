package errors

import "errors"

var (
	ErrInvalidPageSize   = errors.New("page_size must be greater than zero")
	ErrInvalidMaxTokens  = errors.New("max_tokens must be greater than zero")
	ErrInvalidTimeout    = errors.New("timeouts must be at least 1ms and carry a unit, e.g. 30s")
	ErrInvalidSchedule   = errors.New("schedule is not a valid cron expression")
	ErrUnexpectedStatus  = errors.New("unexpected status code")
	ErrMalformedResponse = errors.New("malformed response")
	ErrEmptyCompletion   = errors.New("completion has no content")
	ErrTemplateMismatch  = errors.New("completion does not follow the digest template")
	ErrNoDigest          = errors.New("no digest produced yet")
)
