// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_Success(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("image bytes"))
	}))
	defer ts.Close()

	data, err := Fetch(context.Background(), ts.Client(), ts.URL+"/a.jpg", time.Second, "image-harvest/test")
	require.NoError(t, err)
	assert.Equal(t, []byte("image bytes"), data)
	assert.Equal(t, "image-harvest/test", gotUA)
}

func TestFetch_BadStatusIsTransport(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer ts.Close()

	_, err := Fetch(context.Background(), ts.Client(), ts.URL, time.Second, "")
	require.Error(t, err)
	fe, ok := AsFetchError(err)
	require.True(t, ok)
	assert.Equal(t, KindTransport, fe.Kind)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)

	_, err := Fetch(context.Background(), ts.Client(), ts.URL, 20*time.Millisecond, "")
	require.Error(t, err)
	fe, ok := AsFetchError(err)
	require.True(t, ok)
	assert.Equal(t, KindTimeout, fe.Kind)
}

func TestFetch_ConnectionRefused(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, err := Fetch(context.Background(), http.DefaultClient, url, time.Second, "")
	require.Error(t, err)
	fe, ok := AsFetchError(err)
	require.True(t, ok)
	assert.Equal(t, KindTransport, fe.Kind)
}

func TestLocalIO(t *testing.T) {
	err := LocalIO("https://x/img.jpg", os.ErrPermission)
	fe, ok := AsFetchError(err)
	require.True(t, ok)
	assert.Equal(t, KindLocalIO, fe.Kind)
	assert.True(t, errors.Is(err, os.ErrPermission))
	assert.Equal(t, "local-io", fe.Kind.String())
}
