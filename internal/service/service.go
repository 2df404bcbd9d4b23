package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/laundry-service/internal/domain"
	"github.com/spec-kit/laundry-service/internal/events"
	"github.com/spec-kit/laundry-service/internal/repository"
	apperrors "github.com/spec-kit/laundry-service/pkg/util/errorutil"
)

// Clock returns the current time. Services take one so tests can pin timestamps.
type Clock func() time.Time

func clockOrDefault(now Clock) Clock {
	if now == nil {
		return time.Now
	}
	return now
}

func loggerOrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// advance returns a write timestamp strictly after prev, even when the clock has not moved.
func advance(now Clock, prev time.Time) time.Time {
	t := now()
	if !t.After(prev) {
		t = prev.Add(time.Microsecond)
	}
	return t
}

// storageError maps a repository failure into the public taxonomy.
func storageError(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound(resource, nil)
	default:
		var domainErr *apperrors.DomainError
		if errors.As(err, &domainErr) {
			return err
		}
		return apperrors.NewInternalError(err)
	}
}

func publish(ctx context.Context, dispatcher events.Dispatcher, now Clock, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = now()
	}
	dispatcher.Publish(ctx, event)
}

// homeHostel resolves the student's hostel from the stored user record, which may have
// changed since the token was issued. Students without a record keep the token's hostel.
func homeHostel(ctx context.Context, users repository.UserRepository, student domain.StudentUser) (domain.Hostel, error) {
	if users == nil {
		return student.Hostel, nil
	}
	user, err := users.GetByEmail(ctx, domain.NormalizeEmail(student.Email))
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return student.Hostel, nil
	case err != nil:
		return "", apperrors.NewInternalError(err)
	default:
		return user.Hostel, nil
	}
}
