package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
)

// RequestIDHeader carries the request id in and out.
const RequestIDHeader = "X-Request-ID"

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func corsMiddleware(cfg CORSConfig) gin.HandlerFunc {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	wildcard := len(origins) == 1 && origins[0] == "*"
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", RequestIDHeader},
		ExposeHeaders:    []string{RequestIDHeader, "X-Trace-ID", "X-Render-Hash"},
		AllowCredentials: !wildcard,
		MaxAge:           12 * time.Hour,
	})
}

// traceMiddleware starts a server span per request and echoes its trace id.
func traceMiddleware(service string) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		otelgin.Middleware(service),
		func(c *gin.Context) {
			sc := trace.SpanFromContext(c.Request.Context()).SpanContext()
			if sc.IsValid() {
				c.Set("trace_id", sc.TraceID().String())
				c.Header("X-Trace-ID", sc.TraceID().String())
			}
			c.Next()
		},
	}
}

// accessLog logs one line per request through log.
func accessLog(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
			"request_id", c.GetString("request_id"),
		}
		if id := c.GetString("trace_id"); id != "" {
			attrs = append(attrs, "trace_id", id)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "error", c.Errors.String())
		}
		log.Info("request", attrs...)
	}
}

// recovery turns a panic into a logged 500.
func recovery(log *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, err any) {
		log.Error("panic recovered", "error", err, "path", c.Request.URL.Path,
			"request_id", c.GetString("request_id"))
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody{
			Code:    "INTERNAL",
			Message: "internal server error",
		})
	})
}
