package dropbox

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/auth"

	"github.com/custodia-labs/tgarchive/internal/core/domain"
)

// wrapError maps Dropbox API failures onto the domain error taxonomy.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var authErr auth.AuthAPIError
	if errors.As(err, &authErr) {
		return fmt.Errorf("%w: %v", domain.ErrAuthFailed, err)
	}
	var accessErr auth.AccessAPIError
	if errors.As(err, &accessErr) {
		return fmt.Errorf("%w: %v", domain.ErrPermissionDenied, err)
	}
	return err
}

// isTransient reports whether an API call is worth retrying. Rate limits,
// network faults and timeouts are transient; auth and permission failures
// are not.
func isTransient(err error) bool {
	switch {
	case err == nil:
		return false
	case domain.IsPolicyViolation(err):
		return false
	case errors.Is(err, domain.ErrAuthFailed),
		errors.Is(err, domain.ErrPermissionDenied),
		errors.Is(err, context.Canceled):
		return false
	case errors.Is(err, context.DeadlineExceeded):
		return true
	}

	var rateErr auth.RateLimitAPIError
	if errors.As(err, &rateErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// Unclassified failures are assumed transient; the retry budget keeps
	// them bounded.
	return true
}

// exhausted marks a surviving transient failure as retry exhaustion so
// callers can classify it. Terminal failures pass through untouched.
func exhausted(err error) error {
	if err == nil || !isTransient(err) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrUploadExhausted, err)
}
