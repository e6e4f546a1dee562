package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{name: "remote addr", remoteAddr: "192.0.2.1:1234", want: "192.0.2.1"},
		{name: "forwarded first entry", remoteAddr: "10.0.0.1:80", forwarded: "203.0.113.5, 10.0.0.1", want: "203.0.113.5"},
		{name: "forwarded trimmed", remoteAddr: "10.0.0.1:80", forwarded: " 203.0.113.6 ", want: "203.0.113.6"},
		{name: "ipv6", remoteAddr: "[2001:db8::2]:8080", want: "2001:db8::2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.want, clientIP(r))
		})
	}
}

func TestStatusWriterDefaultsTo200(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &statusWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	_, err := w.Write([]byte("ok"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, w.statusCode)

	w = &statusWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}
	w.WriteHeader(http.StatusTeapot)
	assert.Equal(t, http.StatusTeapot, w.statusCode)
}

func TestDecodeJSONEnforcesLimit(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":"`+strings.Repeat("a", 100)+`"}`))
	rec := httptest.NewRecorder()

	var target struct {
		Text string `json:"text"`
	}
	err := decodeJSON(rec, r, &target, 16)
	require.Error(t, err)

	var maxErr *http.MaxBytesError
	assert.ErrorAs(t, err, &maxErr)
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nope": 1}`))
	rec := httptest.NewRecorder()

	var target struct {
		Text string `json:"text"`
	}
	err := decodeJSON(rec, r, &target, 1024)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field")
}
