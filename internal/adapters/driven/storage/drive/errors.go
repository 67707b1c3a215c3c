package drive

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/tgarchive/internal/core/domain"
)

// Drive reports some quota problems as 403 with one of these reasons
// rather than a 429. They are transient, unlike real permission errors.
var rateLimitReasons = map[string]bool{
	"rateLimitExceeded":     true,
	"userRateLimitExceeded": true,
}

// wrapError converts a Drive API error into the domain error taxonomy.
// Transient errors pass through untouched so the retry layer can see them.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	switch gerr.Code {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", domain.ErrAuthFailed, gerr.Message)
	case http.StatusForbidden:
		if isRateLimited(gerr) {
			return err
		}
		return fmt.Errorf("%w: %s", domain.ErrPermissionDenied, gerr.Message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrFolderNotFound, gerr.Message)
	default:
		return err
	}
}

// isRateLimited reports whether a 403 is really a quota problem.
func isRateLimited(gerr *googleapi.Error) bool {
	for _, e := range gerr.Errors {
		if rateLimitReasons[e.Reason] {
			return true
		}
	}
	return false
}

// isTransient reports whether err is worth retrying: rate limits, server
// errors, network failures and per-call timeouts. Policy violations and
// auth/permission/not-found errors are never retried.
func isTransient(err error) bool {
	switch {
	case err == nil:
		return false
	case domain.IsPolicyViolation(err):
		return false
	case errors.Is(err, domain.ErrAuthFailed),
		errors.Is(err, domain.ErrPermissionDenied),
		errors.Is(err, domain.ErrFolderNotFound):
		return false
	case errors.Is(err, context.Canceled):
		return false
	case errors.Is(err, context.DeadlineExceeded):
		return true
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch {
		case gerr.Code == http.StatusTooManyRequests:
			return true
		case gerr.Code >= 500:
			return true
		case gerr.Code == http.StatusForbidden:
			return isRateLimited(gerr)
		default:
			return false
		}
	}

	var nerr net.Error
	if errors.As(err, &nerr) {
		return true
	}

	// Unrecognised I/O errors get the benefit of the doubt.
	return true
}
