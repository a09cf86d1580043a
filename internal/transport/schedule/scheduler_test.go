package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsInvalidSpec(t *testing.T) {
	for _, spec := range []string{"", "every day", "61 * * * *", "* * * *"} {
		_, err := New(spec)
		assert.Error(t, err, spec)
	}
}

func TestNewAcceptsStandardSpecs(t *testing.T) {
	for _, spec := range []string{"0 8 * * *", "@daily", "@every 1h", " */15 * * * * "} {
		_, err := New(spec)
		assert.NoError(t, err, spec)
	}
}

func TestStartSchedulesNextRunInUTC(t *testing.T) {
	s, err := New("0 8 * * *")
	require.NoError(t, err)
	assert.True(t, s.Next().IsZero())

	require.NoError(t, s.Start(func(context.Context) {}))
	defer s.Stop()

	next := s.Next()
	assert.Equal(t, time.UTC, next.Location())
	assert.Equal(t, 8, next.Hour())
	assert.Equal(t, 0, next.Minute())
}

func TestStopCancelsJobContext(t *testing.T) {
	s, err := New("@every 1s")
	require.NoError(t, err)

	var runs atomic.Int32
	started := make(chan struct{}, 1)
	require.NoError(t, s.Start(func(ctx context.Context) {
		runs.Add(1)
		select {
		case started <- struct{}{}:
		default:
		}
		<-ctx.Done()
	}))

	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}

	s.Stop()
	assert.Equal(t, int32(1), runs.Load())
}
