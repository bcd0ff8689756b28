package httptransport

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dyelens/internal/platform/config"
	"dyelens/internal/platform/errors"
	"dyelens/internal/platform/logging"
)

// Options configures the HTTP router builder.
type Options struct {
	Config *config.Config
	Logger *logging.Logger
}

// Router bundles the gin engine with the common route group.
type Router struct {
	Engine *gin.Engine
	API    *gin.RouterGroup
}

// Build constructs a gin engine pre-configured with recovery, request ids,
// logging and CORS.
func Build(opts Options) (*Router, error) {
	if opts.Config == nil {
		return nil, errors.New(errors.KindConfig, "http.build", "http router requires config")
	}

	if opts.Config.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestIDMiddleware())
	engine.Use(loggingMiddleware(opts.Logger))

	engine.SetTrustedProxies(nil)

	engine.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "X-Request-Id"},
		MaxAge:        12 * time.Hour,
	}))

	return &Router{
		Engine: engine,
		API:    engine.Group("/api"),
	}, nil
}

const requestIDHeader = "X-Request-Id"

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

func loggingMiddleware(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("[HTTP] %s %s -> %d (%s) id=%s",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
			c.GetString("request_id"),
		)
	}
}
