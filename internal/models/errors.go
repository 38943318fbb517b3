package models

import (
	"errors"
	"fmt"
)

// Error kinds shared by every layer. Wrap them with fmt.Errorf("...: %w", kind)
// and classify with errors.Is.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not found")
	ErrDegradedDependency = errors.New("optional dependency unavailable")
)

var (
	ErrReasonRequired       = fmt.Errorf("request must include reason: %w", ErrInvalidInput)
	ErrNegativePage         = fmt.Errorf("page must be a non-negative integer: %w", ErrInvalidInput)
	ErrTorrentNotFound      = fmt.Errorf("torrent with that info hash does not exist: %w", ErrNotFound)
	ErrReportNotFound       = fmt.Errorf("report could not be found: %w", ErrNotFound)
	ErrAuthenticationFailed = errors.New("authentication required")
)

func IsInvalidInput(err error) bool { return errors.Is(err, ErrInvalidInput) }
func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }
func IsNotFound(err error) bool     { return errors.Is(err, ErrNotFound) }
