package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dsipanel/internal/config"
	"dsipanel/internal/daemon"
)

// fakeController implements Controller without hardware.
type fakeController struct {
	state    string
	blankErr error
}

func (f *fakeController) Status() daemon.Status {
	return daemon.Status{
		Variant: "pv13900als20c",
		State:   f.state,
		Mode:    "400x400@60",
	}
}

func (f *fakeController) Blank(context.Context) error {
	if f.blankErr != nil {
		return f.blankErr
	}
	f.state = "uninitialized"
	return nil
}

func (f *fakeController) Wake(context.Context) error {
	f.state = "enabled"
	return nil
}

func newTestServer(cfg *config.Config, ctrl Controller) *httptest.Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return httptest.NewServer(NewServer(cfg, ctrl).Handler())
}

func TestHealth(t *testing.T) {
	ts := newTestServer(nil, &fakeController{state: "enabled"})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStatus(t *testing.T) {
	ts := newTestServer(nil, &fakeController{state: "enabled"})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var st daemon.Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	assert.Equal(t, "pv13900als20c", st.Variant)
	assert.Equal(t, "enabled", st.State)
	assert.Equal(t, "400x400@60", st.Mode)
}

func TestBlankAndWake(t *testing.T) {
	ctrl := &fakeController{state: "enabled"}
	ts := newTestServer(nil, ctrl)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/blank", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "uninitialized", ctrl.state)

	resp, err = http.Post(ts.URL+"/api/wake", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "enabled", ctrl.state)
}

func TestBlankRejectsGet(t *testing.T) {
	ts := newTestServer(nil, &fakeController{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/blank")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestBlankFailureReturns500(t *testing.T) {
	ctrl := &fakeController{state: "enabled", blankErr: errors.New("bus stalled")}
	ts := newTestServer(nil, ctrl)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/blank", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestBasicAuth(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.BasicAuth = &config.BasicAuthConfig{Username: "admin", Password: "secret"}
	ts := newTestServer(cfg, &fakeController{state: "enabled"})
	defer ts.Close()

	// /health stays open.
	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// /api/status requires credentials.
	resp, err = http.Get(ts.URL + "/api/status")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/status", nil)
	require.NoError(t, err)
	req.SetBasicAuth("admin", "secret")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Wrong password is rejected.
	req.SetBasicAuth("admin", "nope")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(nil, &fakeController{state: "enabled"})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
