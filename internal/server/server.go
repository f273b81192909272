// Package server serves rug previews, social cards and traits over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/onchainrugs/rugweave"
	"github.com/onchainrugs/rugweave/cache"
)

// Server holds the routes and their collaborators.
type Server struct {
	cfg     Config
	src     ParamSource
	store   cache.Store
	cache   *cache.Cache
	metrics *Metrics
	log     *slog.Logger
	engine  *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithStore replaces the in-process preview store, typically with Redis.
func WithStore(st cache.Store) Option {
	return func(s *Server) { s.store = st }
}

// New builds a server that resolves tokens through src.
func New(cfg Config, src ParamSource, opts ...Option) *Server {
	s := &Server{cfg: cfg, src: src, metrics: NewMetrics()}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = rugweave.Logger()
	}
	if s.store == nil {
		s.store = cache.NewMemory(cfg.Cache.MemoryEntries)
	}
	s.cache = cache.New(s.store,
		cache.WithTTL(cfg.Cache.TTL),
		cache.WithRenderTimeout(cfg.HTTP.RenderTimeout),
		cache.WithObserver(s.metrics.ObserveCache))

	if cfg.Release {
		gin.SetMode(gin.ReleaseMode)
	}
	s.engine = gin.New()
	s.engine.Use(recovery(s.log), requestID(), corsMiddleware(cfg.CORS))
	if cfg.Tracing.Enabled {
		s.engine.Use(traceMiddleware(cfg.Tracing.ServiceName)...)
	}
	s.engine.Use(s.metrics.Middleware(), accessLog(s.log))
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.healthz)
	s.engine.GET("/metrics", s.metrics.Handler())

	v1 := s.engine.Group("/v1")
	v1.POST("/render", s.renderBody)
	rugs := v1.Group("/rugs/:tokenId")
	rugs.GET("/preview.png", s.preview)
	rugs.GET("/og.png", s.ogCard)
	rugs.GET("/traits", s.traits)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on cfg.HTTP.Addr until ctx is done, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.HTTP.Addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.HTTP.ReadTimeout,
		WriteTimeout: s.cfg.HTTP.WriteTimeout,
	}
	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// render runs one render under the render timeout, recording its span,
// duration and failure code.
func (s *Server) render(ctx context.Context, p rugweave.RenderParameters, t rugweave.Target) (*rugweave.Pixmap, error) {
	if s.cfg.HTTP.RenderTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.HTTP.RenderTimeout)
		defer cancel()
	}
	ctx, span := tracer.Start(ctx, "rugweave.Render", trace.WithAttributes(
		attribute.Int64("rug.token_id", int64(p.TokenID)),
		attribute.String("rug.mode", t.Mode.String()),
	))
	defer span.End()

	start := time.Now()
	pm, err := rugweave.Render(ctx, s.cfg.Render, p, t, rugweave.WithLogger(s.log))
	if err != nil {
		span.RecordError(err)
		code := string(rugweave.ErrorCodeOf(err))
		if code == "" {
			code = "internal"
		}
		s.metrics.RenderErrors.WithLabelValues(code).Inc()
		return nil, err
	}
	s.metrics.RenderDuration.WithLabelValues(t.Mode.String()).Observe(time.Since(start).Seconds())
	span.SetAttributes(attribute.String("rug.hash", pm.Hash()))
	return pm, nil
}

// previewPNG returns the cached or freshly rendered preview of p.
func (s *Server) previewPNG(ctx context.Context, p rugweave.RenderParameters) ([]byte, error) {
	p.Mode = rugweave.ModePreview
	key := cache.PreviewKey(s.cfg.Render, p)
	return s.cache.GetOrRender(ctx, key, func(ctx context.Context) ([]byte, error) {
		pm, err := s.render(ctx, p, rugweave.Target{Mode: rugweave.ModePreview})
		if err != nil {
			return nil, err
		}
		return pixmapPNG(pm)
	})
}

func pixmapPNG(pm *rugweave.Pixmap) ([]byte, error) {
	var buf bytes.Buffer
	if err := pm.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
