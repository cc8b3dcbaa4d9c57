package hc

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pinger struct{ err error }

func (p pinger) Ping() error { return p.err }

func TestHandle(t *testing.T) {
	h := Handle("1.0.0", map[string]Pinger{"db": pinger{}})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Version string            `json:"version"`
		Checks  map[string]string `json:"checks"`
	}
	require.Nil(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "1.0.0", body.Version)
	assert.Equal(t, "ok", body.Checks["db"])
}

func TestHandleUnhealthy(t *testing.T) {
	h := Handle("1.0.0", map[string]Pinger{"db": pinger{err: errors.New("down")}})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
