// Package assets fetches and decodes vehicle assets into scene graphs.
//
// A Loader decodes each path at most once for its lifetime. Concurrent loads
// of the same path share one fetch, and failed fetches are not remembered, so
// the next Load of that path tries again.
package assets

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"showroom/internal/scene"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Source opens the raw bytes of an asset path.
type Source interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// Decoder turns asset bytes into a node graph.
type Decoder interface {
	Decode(path string, data []byte) (*scene.Graph, error)
}

// LoadError reports a fetch or decode failure for one asset path.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load asset %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

type Loader struct {
	src Source
	dec Decoder
	log zerolog.Logger

	group   singleflight.Group
	mu      sync.Mutex
	graphs  map[string]*scene.Graph
	fetches atomic.Int64
}

// NewLoader returns a loader with an empty cache. A nil decoder means GLTFDecoder.
func NewLoader(src Source, dec Decoder, log zerolog.Logger) *Loader {
	if dec == nil {
		dec = GLTFDecoder{}
	}
	return &Loader{
		src:    src,
		dec:    dec,
		log:    log.With().Str("component", "assets").Logger(),
		graphs: make(map[string]*scene.Graph),
	}
}

// Load returns the graph for path. The returned graph is shared and must not
// be modified; clone it first.
//
// If ctx ends before the fetch completes Load returns ctx.Err(), but the fetch
// keeps running and its result is still cached for later callers.
func (l *Loader) Load(ctx context.Context, path string) (*scene.Graph, error) {
	if g, ok := l.cached(path); ok {
		return g, nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := l.group.DoChan(path, func() (any, error) {
		return l.fetch(fetchCtx, path)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*scene.Graph), nil
	}
}

// Cached reports whether a decoded graph for path is in the cache.
func (l *Loader) Cached(path string) bool {
	_, ok := l.cached(path)
	return ok
}

// Fetches returns how many times the loader went to its source.
func (l *Loader) Fetches() int64 {
	return l.fetches.Load()
}

func (l *Loader) cached(path string) (*scene.Graph, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	g, ok := l.graphs[path]
	return g, ok
}

func (l *Loader) fetch(ctx context.Context, path string) (*scene.Graph, error) {
	// Another flight for this path may have finished between our cache miss
	// and joining the group.
	if g, ok := l.cached(path); ok {
		return g, nil
	}

	l.fetches.Add(1)
	start := time.Now()
	l.log.Debug().Str("path", path).Msg("fetching asset")

	g, size, err := l.read(ctx, path)
	if err != nil {
		l.log.Warn().Err(err).Str("path", path).Msg("asset load failed")
		return nil, &LoadError{Path: path, Err: err}
	}

	l.mu.Lock()
	l.graphs[path] = g
	l.mu.Unlock()

	l.log.Debug().
		Str("path", path).
		Int("bytes", size).
		Int("nodes", g.Count()).
		Dur("took", time.Since(start)).
		Msg("asset loaded")
	return g, nil
}

func (l *Loader) read(ctx context.Context, path string) (*scene.Graph, int, error) {
	rc, err := l.src.Open(ctx, path)
	if err != nil {
		return nil, 0, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, 0, fmt.Errorf("read: %w", err)
	}
	if err := sniff(data); err != nil {
		return nil, len(data), err
	}
	g, err := l.dec.Decode(path, data)
	if err != nil {
		return nil, len(data), fmt.Errorf("decode: %w", err)
	}
	g.Path = path
	return g, len(data), nil
}
