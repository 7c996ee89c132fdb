package assets

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirSourceOpen(t *testing.T) {
	src := DirSource{FS: fstest.MapFS{
		"ferrari_f40.glb": {Data: []byte("glTF")},
	}}

	rc, err := src.Open(context.Background(), "/ferrari_f40.glb")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "glTF", string(data))

	_, err = src.Open(context.Background(), "/missing.glb")
	assert.Error(t, err)

	_, err = src.Open(context.Background(), "/../etc/passwd")
	assert.Error(t, err)
}

func TestDirSourceHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := DirSource{FS: fstest.MapFS{}}.Open(ctx, "/a.glb")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPSourceOpen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/ferrari_f40.glb", r.URL.Path)
		_, _ = w.Write([]byte("glTF"))
	}))
	defer srv.Close()

	src := HTTPSource{BaseURL: srv.URL + "/models", Client: srv.Client()}
	rc, err := src.Open(context.Background(), "/ferrari_f40.glb")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "glTF", string(data))
}

func TestHTTPSourceNotFoundIsPermanent(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	src := HTTPSource{BaseURL: srv.URL, Client: srv.Client(), MaxElapsed: 2 * time.Second}
	_, err := src.Open(context.Background(), "/nope.glb")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Status)
	assert.Equal(t, int32(1), hits.Load())
}

func TestHTTPSourceRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("glTF"))
	}))
	defer srv.Close()

	src := HTTPSource{BaseURL: srv.URL, Client: srv.Client(), MaxElapsed: 5 * time.Second}
	rc, err := src.Open(context.Background(), "/f50.glb")
	require.NoError(t, err)
	rc.Close()
	assert.Equal(t, int32(3), hits.Load())
}
