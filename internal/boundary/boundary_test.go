package boundary

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateRetainsOnlyMostRecent(t *testing.T) {
	s := NewState()
	_, ok := s.Last()
	assert.False(t, ok)

	s.Record(errors.New("fault A"), "first")
	s.Record(errors.New("fault B"), "second")

	captured, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, "fault B", captured.Message)
	assert.Equal(t, "second", captured.Info)
	assert.False(t, captured.At.IsZero())
}

func TestClearIsIdempotent(t *testing.T) {
	s := NewState()
	s.Record(errors.New("fault"), "info")
	s.Clear()
	_, ok := s.Last()
	assert.False(t, ok)
	s.Clear()
	_, ok = s.Last()
	assert.False(t, ok)
}

func TestMiddlewareObservesAndRepanics(t *testing.T) {
	state := NewState()
	boom := errors.New("boom")
	wrapped := Middleware(state, "home", nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(boom)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/views/home/triggers/panic", nil)
	rec := httptest.NewRecorder()

	var repanicked any
	func() {
		defer func() { repanicked = recover() }()
		wrapped.ServeHTTP(rec, req)
	}()

	// The fault continues upward untouched.
	require.Equal(t, boom, repanicked)

	captured, ok := state.Last()
	require.True(t, ok)
	assert.Equal(t, "boom", captured.Message)
	assert.Contains(t, captured.Info, "view home")
	assert.Contains(t, captured.Info, "POST /api/views/home/triggers/panic")
}

func TestMiddlewarePassesThroughWithoutFault(t *testing.T) {
	state := NewState()
	wrapped := Middleware(state, "home", nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	_, ok := state.Last()
	assert.False(t, ok)
}

func TestMiddlewareWrapsNonErrorPanic(t *testing.T) {
	state := NewState()
	wrapped := Middleware(state, "about", nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("plain string")
	}))

	func() {
		defer func() { _ = recover() }()
		wrapped.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/about", nil))
	}()

	captured, ok := state.Last()
	require.True(t, ok)
	assert.Equal(t, "plain string", captured.Message)
}
