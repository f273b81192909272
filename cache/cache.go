package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/onchainrugs/rugweave"
	"github.com/onchainrugs/rugweave/glyph"
)

var tracer = otel.Tracer("github.com/onchainrugs/rugweave/cache")

// Result labels the outcome of a lookup for metrics.
type Result string

const (
	ResultHit    Result = "hit"
	ResultMiss   Result = "miss"
	ResultShared Result = "shared"
	ResultError  Result = "error"
)

// Cache is a read-through cache of encoded renders. Concurrent misses on
// the same key share one render.
type Cache struct {
	store   Store
	ttl     time.Duration
	group   singleflight.Group
	observe func(Result)
	timeout time.Duration
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets the expiry of stored entries. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

// WithObserver registers a callback run once per lookup with its outcome.
func WithObserver(fn func(Result)) Option {
	return func(c *Cache) { c.observe = fn }
}

// WithRenderTimeout bounds a shared render. The render runs detached from
// the caller that started it, so this is its only deadline.
func WithRenderTimeout(d time.Duration) Option {
	return func(c *Cache) { c.timeout = d }
}

// New returns a cache over store.
func New(store Store, opts ...Option) *Cache {
	c := &Cache{store: store, observe: func(Result) {}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrRender returns the bytes under key, calling render on a miss and
// storing its result. Render errors are returned and never stored. A
// failing store is logged and bypassed.
//
// A render is shared by every caller waiting on key and keeps running when
// any one of them gives up; each caller stops waiting when its own ctx is
// done.
func (c *Cache) GetOrRender(ctx context.Context, key string, render func(context.Context) ([]byte, error)) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "cache.GetOrRender", trace.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()

	val, ok, err := c.store.Get(ctx, key)
	if err != nil {
		span.RecordError(err)
		rugweave.Logger().Warn("cache read failed", "key", key, "error", err)
	}
	if ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		c.observe(ResultHit)
		return val, nil
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	flight := c.group.DoChan(key, func() (any, error) {
		rctx := context.WithoutCancel(ctx)
		if c.timeout > 0 {
			var cancel context.CancelFunc
			rctx, cancel = context.WithTimeout(rctx, c.timeout)
			defer cancel()
		}
		out, err := render(rctx)
		if err != nil {
			return nil, err
		}
		if err := c.store.Set(rctx, key, out, c.ttl); err != nil {
			rugweave.Logger().Warn("cache write failed", "key", key, "error", err)
		}
		return out, nil
	})

	var (
		v      any
		shared bool
	)
	select {
	case res := <-flight:
		v, err, shared = res.Val, res.Err, res.Shared
	case <-ctx.Done():
		err = ctx.Err()
	}
	span.SetAttributes(attribute.Bool("cache.shared", shared))
	if err != nil {
		span.RecordError(err)
		c.observe(ResultError)
		return nil, err
	}
	if shared {
		c.observe(ResultShared)
	} else {
		c.observe(ResultMiss)
	}
	return v.([]byte), nil
}

// Invalidate removes key from the store.
func (c *Cache) Invalidate(ctx context.Context, key string) error {
	return c.store.Delete(ctx, key)
}

// previewInput is everything that can change preview pixels. Aging, mode
// and the token id are left out: previews never draw aging.
type previewInput struct {
	Config        rugweave.Config      `json:"config"`
	Seed          uint32               `json:"seed"`
	Colors        []string             `json:"colors"`
	Stripes       []rugweave.StripeRow `json:"stripes"`
	TextRows      []string             `json:"textRows"`
	WarpThickness int                  `json:"warpThickness"`
	Glyphs        glyph.Map            `json:"glyphs,omitempty"`
}

// PreviewKey returns a content key for the preview of p under cfg. Equal
// keys mean byte-identical previews.
func PreviewKey(cfg rugweave.Config, p rugweave.RenderParameters) string {
	in := previewInput{
		Config:        cfg,
		Seed:          uint32(p.Seed),
		Colors:        p.Palette.Colors,
		Stripes:       p.StripeRows,
		TextRows:      p.TextRows,
		WarpThickness: p.WarpThickness,
		Glyphs:        p.CharacterMap,
	}
	data, err := json.Marshal(in)
	if err != nil {
		// Every field is plain data; only a broken glyph encoder gets here.
		panic(fmt.Sprintf("cache: encode preview key: %v", err))
	}
	sum := sha256.Sum256(data)
	return "preview:v1:" + hex.EncodeToString(sum[:])
}
