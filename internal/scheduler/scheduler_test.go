package scheduler

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidSchedule(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	_, err := New("every morning", time.UTC, func(context.Context) error { return nil }, log)

	assert.Error(t, err)
}

func TestRunNow_LogsFailure(t *testing.T) {
	log, hook := test.NewNullLogger()
	calls := 0
	s, err := New("0 7 * * *", time.UTC, func(ctx context.Context) error {
		calls++
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return errors.New("database unavailable")
	}, log)
	require.NoError(t, err)

	s.RunNow()

	assert.Equal(t, 1, calls)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "Scheduled run failed", hook.LastEntry().Message)
}

func TestNext_UsesLocation(t *testing.T) {
	log, _ := test.NewNullLogger()
	loc := time.FixedZone("ART", -3*60*60)

	s, err := New("0 7 * * *", loc, func(context.Context) error { return nil }, log)
	require.NoError(t, err)
	s.Start()
	defer s.Stop()

	next := s.Next().In(loc)
	assert.Equal(t, 7, next.Hour())
	assert.Equal(t, 0, next.Minute())
}
