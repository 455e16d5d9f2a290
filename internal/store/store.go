// Package store persists portfolio projects.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio-api/internal/models"
)

// ErrNotFound is returned when no project has the requested id.
var ErrNotFound = errors.New("project not found")

// Error wraps an unexpected persistence failure with the operation that
// triggered it.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// ProjectStore is the repository contract the HTTP layer depends on.
type ProjectStore interface {
	Create(ctx context.Context, in models.CreateProjectRequest) (*models.Project, error)
	Get(ctx context.Context, id int64) (*models.Project, error)
	List(ctx context.Context, opts ListOptions) ([]models.Project, error)
	Update(ctx context.Context, id int64, patch models.UpdateProjectRequest) (*models.Project, error)
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

// Clock returns the current time. Tests replace it to get stable timestamps.
type Clock func() time.Time

// Now truncates to microseconds, the precision of a TIMESTAMPTZ column.
func (c Clock) Now() time.Time {
	return c().UTC().Truncate(time.Microsecond)
}

// Option configures a store.
type Option func(*options)

type options struct {
	clock Clock
}

// WithClock overrides the time source used for created_at/updated_at.
func WithClock(c Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

func buildOptions(opts []Option) options {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Touch returns the updated_at value for a mutation at now, never earlier
// than createdAt.
func Touch(createdAt, now time.Time) time.Time {
	if now.Before(createdAt) {
		return createdAt
	}
	return now
}
