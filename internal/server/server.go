package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/danmuck/wfirexctl/internal/observability"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// APIPrefix scopes the appliance routes.
const APIPrefix = "/rs-wfirex4/v1"

// Registry resolves device/button names to raw IR waveforms.
type Registry interface {
	Lookup(device, button string) ([]byte, error)
	Devices() map[string][]string
}

// Sender delivers one waveform to the appliance at addr.
type Sender interface {
	Send(ctx context.Context, addr string, waveform []byte) error
}

// Config wires the gateway to its collaborators.
type Config struct {
	ApplianceAddr string
	CorsOrigins   []string
	Logger        zerolog.Logger
}

// Gateway translates HTTP requests into appliance commands.
type Gateway struct {
	registry      Registry
	sender        Sender
	applianceAddr string
	logger        zerolog.Logger
	httpRouter    *gin.Engine
}

// New builds a gateway with its middleware stack and routes registered.
func New(registry Registry, sender Sender, cfg Config) *Gateway {
	gin.SetMode(gin.ReleaseMode)
	g := &Gateway{
		registry:      registry,
		sender:        sender,
		applianceAddr: strings.TrimSpace(cfg.ApplianceAddr),
		logger:        cfg.Logger,
		httpRouter:    gin.New(),
	}

	g.httpRouter.Use(gin.Recovery())
	g.httpRouter.Use(observability.RequestID())
	g.httpRouter.Use(observability.RequestLogger(g.logger))
	g.httpRouter.Use(observability.RequestMetricsMiddleware())
	if len(cfg.CorsOrigins) > 0 {
		g.httpRouter.Use(cors.New(cors.Config{
			AllowOrigins: cfg.CorsOrigins,
			AllowMethods: []string{http.MethodGet},
			AllowHeaders: []string{"Origin", "Content-Type", observability.RequestIDHeader},
			MaxAge:       12 * time.Hour,
		}))
	}
	g.RegisterRoutes()
	return g
}

// HTTPRouter exposes the handler for serving and tests.
func (g *Gateway) HTTPRouter() http.Handler {
	return g.httpRouter
}
