package safesync

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevision(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("  12345\n"))
	}))
	defer srv.Close()

	rev, err := (&Fetcher{}).Revision(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "12345", rev)
}

func TestRevisionErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"not found", http.StatusNotFound, "", "HTTP 404"},
		{"multi token", http.StatusOK, "12 13", "is not a revision"},
		{"too large", http.StatusOK, strings.Repeat("1", maxBody+1), "exceeds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := (&Fetcher{Client: srv.Client()}).Revision(context.Background(), srv.URL)
			var sErr *Error
			require.True(t, errors.As(err, &sErr))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRevisionEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(" \n"))
	}))
	defer srv.Close()

	rev, err := (&Fetcher{}).Revision(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Empty(t, rev)
}

func TestRevisionTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := (&Fetcher{Timeout: 20 * time.Millisecond}).Revision(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--head")
}
