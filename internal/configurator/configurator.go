// Package configurator is the model and color selection engine the UI talks to.
//
// All methods must be called from one goroutine, normally the render loop.
// Loads run in the background and their outcome is applied by Pump or Await
// on that same goroutine, so state never changes behind the caller's back.
// A load that finishes after the user picked another model is cached for
// later but does not change what is shown.
package configurator

import (
	"context"
	"errors"
	"fmt"

	"showroom/internal/assets"
	"showroom/internal/catalog"
	"showroom/internal/event"
	"showroom/internal/instance"
	"showroom/internal/material"
	"showroom/internal/scene"

	"github.com/rs/zerolog"
)

var (
	ErrClosed = errors.New("configurator closed")

	ErrUnknownModel  = catalog.ErrUnknownModel
	ErrInvalidColor  = catalog.ErrInvalidColor
	ErrInstantiation = instance.ErrInstantiation
)

// LoadError is the failure reported for an asset that could not be fetched
// or decoded.
type LoadError = assets.LoadError

// Loader resolves an asset path to its shared, read-only graph.
type Loader interface {
	Load(ctx context.Context, path string) (*scene.Graph, error)
}

type Options struct {
	// DefaultModel and DefaultColor override the catalog defaults for the
	// initial state. DefaultColor may be a hex value or a palette name.
	DefaultModel string
	DefaultColor string

	Logger zerolog.Logger

	// OnRelease is called for every cached instance when the configurator
	// closes.
	OnRelease func(*instance.Instance)

	// Buffer is the capacity of the hand-off queue between load goroutines
	// and Pump.
	Buffer int
}

type Configurator struct {
	cat       *catalog.Catalog
	loader    Loader
	log       zerolog.Logger
	onRelease func(*instance.Instance)

	ctx     context.Context
	cancel  context.CancelFunc
	results chan result

	entries   map[string]*entry
	current   string
	color     catalog.ColorOption
	displayed string
	inflight  int
	closed    bool

	feed event.Feed[State]
	last State
	diag Diagnostics
}

func New(cat *catalog.Catalog, loader Loader, opts Options) (*Configurator, error) {
	if cat == nil || loader == nil {
		return nil, errors.New("configurator: catalog and loader are required")
	}

	modelID := cat.DefaultModel()
	if opts.DefaultModel != "" {
		if !cat.Has(opts.DefaultModel) {
			return nil, fmt.Errorf("default model %q: %w", opts.DefaultModel, ErrUnknownModel)
		}
		modelID = opts.DefaultModel
	}
	color := cat.DefaultColor()
	if opts.DefaultColor != "" {
		opt, err := cat.Palette().Lookup(opts.DefaultColor)
		if err != nil {
			return nil, fmt.Errorf("default color: %w", err)
		}
		color = opt
	}

	buffer := opts.Buffer
	if buffer <= 0 {
		buffer = cat.Len()
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Configurator{
		cat:       cat,
		loader:    loader,
		log:       opts.Logger.With().Str("component", "configurator").Logger(),
		onRelease: opts.OnRelease,
		ctx:       ctx,
		cancel:    cancel,
		results:   make(chan result, buffer),
		entries:   make(map[string]*entry),
		current:   modelID,
		color:     color,
		diag:      Diagnostics{ZeroMatch: make(map[string]int)},
	}
	c.last = c.snapshot()
	return c, nil
}

// SelectModel makes id the current model. A cached instance is shown at once
// with the current color; otherwise a load starts and the state is Loading
// until Pump or Await applies its result. Unknown ids leave the state as is.
func (c *Configurator) SelectModel(id string) error {
	if c.closed {
		return ErrClosed
	}
	desc, err := c.cat.Get(id)
	if err != nil {
		c.log.Info().Err(err).Msg("model selection rejected")
		return err
	}

	c.current = id
	e := c.entries[id]
	switch {
	case e != nil && e.status == Ready:
		c.paint(id, e.inst)
		c.displayed = id
	case e != nil && e.status == Loading:
		// The in-flight result will be promoted when it lands.
	default:
		c.entries[id] = &entry{status: Loading}
		c.startLoad(desc)
	}

	c.log.Debug().Str("model", id).Stringer("status", c.entries[id].status).Msg("model selected")
	c.publish()
	return nil
}

// SelectColor records color, given as a hex value or palette name, and
// repaints the current model if it is Ready. While the model is Loading or
// Failed the color is applied once it becomes Ready.
func (c *Configurator) SelectColor(color string) error {
	if c.closed {
		return ErrClosed
	}
	opt, err := c.cat.Palette().Lookup(color)
	if err != nil {
		c.log.Info().Err(err).Msg("color selection rejected")
		return err
	}

	c.color = opt
	if e := c.entries[c.current]; e != nil && e.status == Ready {
		c.paint(c.current, e.inst)
	}
	c.publish()
	return nil
}

// State returns the current snapshot.
func (c *Configurator) State() State {
	return c.snapshot()
}

// ModelStatus reports the cached status of any model, current or not.
func (c *Configurator) ModelStatus(id string) Status {
	if e := c.entries[id]; e != nil {
		return e.status
	}
	return Idle
}

func (c *Configurator) ListCatalog() []catalog.Summary {
	return c.cat.Summaries()
}

func (c *Configurator) Palette() catalog.Palette {
	return c.cat.Palette()
}

// Subscribe registers fn to receive each new snapshot. fn runs on the control
// goroutine, inside the call that changed the state.
func (c *Configurator) Subscribe(fn func(State)) (unsubscribe func()) {
	return c.feed.Subscribe(fn)
}

// Pending is the number of loads whose results have not been applied yet.
func (c *Configurator) Pending() int {
	return c.inflight
}

// Pump applies every load result that is ready without blocking and returns
// how many were applied.
func (c *Configurator) Pump() int {
	n := 0
	for !c.closed {
		select {
		case r := <-c.results:
			c.handle(r)
			n++
		default:
			return n
		}
	}
	return n
}

// Await blocks until one load result is applied or ctx ends. It returns
// immediately when nothing is in flight.
func (c *Configurator) Await(ctx context.Context) error {
	if c.closed {
		return ErrClosed
	}
	if c.inflight == 0 {
		return nil
	}
	select {
	case r := <-c.results:
		c.handle(r)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Configurator) Diagnostics() Diagnostics {
	d := c.diag
	d.ZeroMatch = make(map[string]int, len(c.diag.ZeroMatch))
	for k, v := range c.diag.ZeroMatch {
		d.ZeroMatch[k] = v
	}
	return d
}

// Close releases every cached instance through Options.OnRelease and drops
// loads still in flight. Later calls return ErrClosed.
func (c *Configurator) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.cancel()
	c.feed.Clear()

	for id, e := range c.entries {
		if e.inst != nil && c.onRelease != nil {
			c.onRelease(e.inst)
		}
		delete(c.entries, id)
	}
	c.displayed = ""
	c.log.Debug().Int("dropped", c.inflight).Msg("configurator closed")
	return nil
}

func (c *Configurator) startLoad(desc catalog.Descriptor) {
	c.inflight++
	go func() {
		r := result{modelID: desc.ID}
		raw, err := c.loader.Load(c.ctx, desc.AssetPath)
		if err == nil {
			place := instance.Placement{Scale: desc.Scale, Position: desc.Position}
			r.inst, err = instance.Instantiate(desc.ID, raw, desc.Rule, place)
		}
		r.err = err

		select {
		case c.results <- r:
		case <-c.ctx.Done():
		}
	}()
}

// handle applies one hand-off. The cache entry always takes the result;
// only a result for the current selection changes what is displayed.
func (c *Configurator) handle(r result) {
	c.inflight--
	log := c.log.With().Str("model", r.modelID).Logger()

	e := c.entries[r.modelID]
	if e == nil {
		e = &entry{}
		c.entries[r.modelID] = e
	}
	if r.err != nil {
		c.diag.LoadFailures++
		e.status, e.inst, e.err = Failed, nil, r.err
		log.Warn().Err(r.err).Msg("model failed to load")
	} else {
		e.status, e.inst, e.err = Ready, r.inst, nil
		log.Debug().
			Int("nodes", r.inst.NodeCount()).
			Int("paintable", r.inst.PaintableCount()).
			Msg("model ready")
	}

	if r.modelID != c.current {
		c.diag.Stale++
		log.Debug().Str("current", c.current).Msg("stale load result cached")
		return
	}
	if e.status == Ready {
		c.paint(r.modelID, e.inst)
		c.displayed = r.modelID
	}
	c.publish()
}

func (c *Configurator) paint(modelID string, inst *instance.Instance) {
	desc, err := c.cat.Get(modelID)
	if err != nil {
		return
	}
	spec, err := material.Build(desc.Profile, c.color.Hex)
	if err != nil {
		// Palette entries are validated when the catalog loads.
		c.log.Error().Err(err).Str("color", c.color.Hex).Msg("palette color rejected")
		return
	}
	if inst.Apply(spec) == 0 {
		c.diag.ZeroMatch[modelID]++
		c.log.Warn().Str("model", modelID).Stringer("rule", desc.Rule).Msg("paint rule matched no parts")
	}
}

func (c *Configurator) snapshot() State {
	s := State{ModelID: c.current, Color: c.color, Status: Idle}
	if e := c.entries[c.current]; e != nil {
		s.Status = e.status
		s.Err = e.err
		if e.status == Ready {
			s.Instance = e.inst
		}
	}
	if e := c.entries[c.displayed]; e != nil && e.status == Ready {
		s.Displayed = e.inst
		s.DisplayedModelID = c.displayed
	}
	return s
}

func (c *Configurator) publish() {
	s := c.snapshot()
	if s.equal(c.last) {
		return
	}
	c.last = s
	c.feed.Send(s)
}
