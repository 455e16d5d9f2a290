package store

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTouchNeverBeforeCreated(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.Equal(t, created, Touch(created, created.Add(-time.Second)))
	assert.Equal(t, created.Add(time.Minute), Touch(created, created.Add(time.Minute)))
}

func TestClockTruncatesToMicroseconds(t *testing.T) {
	c := Clock(func() time.Time {
		return time.Date(2024, 1, 1, 0, 0, 0, 123456789, time.FixedZone("X", 3600))
	})

	now := c.Now()
	assert.Equal(t, 123456000, now.Nanosecond())
	assert.Equal(t, time.UTC, now.Location())
}

func TestErrorWrapping(t *testing.T) {
	cause := errors.New("connection reset")
	err := wrap("update", cause)

	var se *Error
	assert.ErrorAs(t, err, &se)
	assert.Equal(t, "update", se.Op)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "store update: connection reset", err.Error())
	assert.NoError(t, wrap("noop", nil))
}
