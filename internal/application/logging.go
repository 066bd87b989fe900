package application

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/example/campus-events/internal/logging"
	"github.com/example/campus-events/internal/persistence"
)

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// serviceLogger prefers a request scoped logger carried on the context and
// falls back to the service's own logger.
func serviceLogger(ctx context.Context, fallback *slog.Logger, service, operation string, attrs ...any) *slog.Logger {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = defaultLogger(fallback)
	}
	logger = logger.With(
		slog.String("service", service),
		slog.String("operation", operation),
	)
	if len(attrs) > 0 {
		logger = logger.With(attrs...)
	}
	return logger
}

// ErrorKind classifies errors into stable labels for log records.
func ErrorKind(err error) string {
	var validation *ValidationError
	switch {
	case err == nil:
		return "none"
	case errors.As(err, &validation):
		return "validation"
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrInvalidToken):
		return "invalid_token"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrAlreadyRSVPed):
		return "already_rsvped"
	case errors.Is(err, ErrInvalidEventID):
		return "invalid_event_id"
	case errors.Is(err, ErrEventAndAuthRequired):
		return "missing_input"
	case errors.Is(err, ErrNotFound), errors.Is(err, persistence.ErrNotFound):
		return "not_found"
	default:
		return "unexpected"
	}
}
