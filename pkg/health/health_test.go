package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
)

func probe(h http.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestReadyEndpoint_NotReadyByDefault(t *testing.T) {
	h := New()
	assert.Equal(t, http.StatusServiceUnavailable, probe(h.ReadyEndpoint).Code)
}

func TestReadyEndpoint_Ready(t *testing.T) {
	h := New()
	h.SetReady(true)
	assert.Equal(t, http.StatusOK, probe(h.ReadyEndpoint).Code)
}

func TestReadyEndpoint_FailingCheck(t *testing.T) {
	h := New()
	h.SetReady(true)
	h.AddReadinessCheck("upstream", time.Second, func(_ context.Context) error {
		return errors.New("unreachable")
	})

	w := probe(h.ReadyEndpoint)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unreachable")
}

func TestLiveEndpoint(t *testing.T) {
	h := New()
	h.AddLivenessCheck("always-ok", time.Second, func(_ context.Context) error { return nil })

	w := probe(h.LiveEndpoint)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"always-ok"`)
}

func TestReadyEndpoint_DrainGate(t *testing.T) {
	h := New()
	h.SetReady(true)
	h.AddReadinessCheck("ok", time.Second, func(_ context.Context) error { return nil })

	assert.Equal(t, http.StatusOK, probe(h.ReadyEndpoint).Code)

	// Flipping the gate wins over healthy checks; used for graceful drain.
	h.SetReady(false)
	assert.Equal(t, http.StatusServiceUnavailable, probe(h.ReadyEndpoint).Code)
}

func TestGoroutineCountCheck(t *testing.T) {
	assert.NoError(t, GoroutineCountCheck(1_000_000)(context.Background()))
	assert.Error(t, GoroutineCountCheck(0)(context.Background()))
}

func TestHTTPReachableCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	assert.NoError(t, HTTPReachableCheck(nil, srv.URL)(context.Background()))

	srv.Close()
	assert.Error(t, HTTPReachableCheck(nil, srv.URL)(context.Background()))
}
