package utils

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackoffSingleAttemptByDefault(t *testing.T) {
	b := NewBackoff(time.Millisecond, 0)
	calls := 0
	err := b.Do(context.Background(), func(int) error { calls++; return errors.New("nope") })
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, b.Attempts())
}

func TestBackoffNegativeRetriesClamp(t *testing.T) {
	assert.Equal(t, 1, NewBackoff(time.Millisecond, -3).Attempts())
}

func TestBackoffRetriesUntilSuccess(t *testing.T) {
	b := NewBackoff(time.Millisecond, 3)
	var seen []int
	err := b.Do(context.Background(), func(i int) error {
		seen = append(seen, i)
		if i < 2 {
			return errors.New("flaky")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, seen)
}

func TestBackoffStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	err := NewBackoff(time.Hour, 5).Do(ctx, func(int) error { calls++; return errors.New("down") })
	assert.EqualError(t, err, "down")
	assert.Equal(t, 1, calls)
}

func TestBackoffDelayIsCapped(t *testing.T) {
	b := NewBackoff(100*time.Millisecond, 100)
	assert.Equal(t, 100*time.Millisecond, b.Delay(0))
	assert.Equal(t, 400*time.Millisecond, b.Delay(2))
	for _, i := range []int{9, 40, 63, 64, 100} {
		d := b.Delay(i)
		assert.Positive(t, d, "attempt %d", i)
		assert.LessOrEqual(t, d, MaxDelay, "attempt %d", i)
	}
	assert.Equal(t, MaxDelay, b.Delay(64))
	assert.Equal(t, time.Duration(0), NewBackoff(0, 3).Delay(5))
}

func TestBackoffStopsOnPermanent(t *testing.T) {
	gone := errors.New("gone")
	calls := 0
	err := NewBackoff(time.Millisecond, 5).Do(context.Background(), func(int) error {
		calls++
		return Permanent(gone)
	})
	assert.Equal(t, gone, err)
	assert.Equal(t, 1, calls)
}

func TestRequestIDMintsAndReuses(t *testing.T) {
	var got string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { got = RequestIDFrom(r.Context()) }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, got, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "abc-123", got)

	assert.Empty(t, RequestIDFrom(context.Background()))
}

func TestLoggerRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	h := RequestID(Logger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/views/devices", nil))
	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"path":"/views/devices"`)
}
