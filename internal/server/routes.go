package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danmuck/wfirexctl/internal/appliance"
	"github.com/danmuck/wfirexctl/internal/observability"
	"github.com/danmuck/wfirexctl/internal/protocol"
	"github.com/danmuck/wfirexctl/internal/waveform"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (g *Gateway) RegisterRoutes() {
	g.httpRouter.GET("/heartbeat", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	g.httpRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := g.httpRouter.Group(APIPrefix)
	api.GET("/packet/:device/buttons/:button", g.packetOutput)
	api.GET("/devices/:device/buttons/:button", g.executeButton)
	api.GET("/devices", g.listDevices)
}

// packetOutput renders the frame that would be sent, without contacting the
// appliance.
func (g *Gateway) packetOutput(c *gin.Context) {
	device, button := c.Param("device"), c.Param("button")
	ir, ok := g.lookup(c, device, button)
	if !ok {
		return
	}
	frame, err := protocol.Encode(ir)
	if err != nil {
		g.logger.Error().Err(err).Str("device", device).Str("button", button).Msg("encode frame")
		c.String(http.StatusInternalServerError, "Button '%s' on device '%s' could not be encoded.", button, device)
		return
	}
	c.String(http.StatusOK, "Button '%s' on device '%s'.\n%s", button, device, protocol.HexDump(frame))
}

func (g *Gateway) executeButton(c *gin.Context) {
	device, button := c.Param("device"), c.Param("button")
	ir, ok := g.lookup(c, device, button)
	if !ok {
		return
	}

	start := time.Now()
	err := g.sender.Send(c.Request.Context(), g.applianceAddr, ir)
	result := "ok"
	if err != nil {
		result = "error"
		if kind, ok := appliance.KindOf(err); ok {
			result = string(kind)
		}
	}
	observability.RecordApplianceSend(device, button, result, time.Since(start))

	if err != nil {
		msg := fmt.Sprintf("Button '%s' on device '%s' was Error.", button, device)
		g.logger.Error().
			Err(err).
			Str("request_id", observability.RequestIDFrom(c)).
			Str("appliance", g.applianceAddr).
			Str("kind", result).
			Msg(msg)
		c.String(http.StatusInternalServerError, "%s", msg)
		return
	}
	c.String(http.StatusOK, "Button '%s' on device '%s' has been pressed.", button, device)
}

func (g *Gateway) listDevices(c *gin.Context) {
	c.JSON(http.StatusOK, g.registry.Devices())
}

// lookup resolves the waveform or writes a 404 naming what was missing.
func (g *Gateway) lookup(c *gin.Context, device, button string) ([]byte, bool) {
	ir, err := g.registry.Lookup(device, button)
	if err == nil {
		return ir, true
	}
	var lerr *waveform.LookupError
	if errors.As(err, &lerr) {
		g.logger.Warn().Str("device", device).Str("button", button).Msg(lerr.Error())
		c.String(http.StatusNotFound, "%s", lerr.Error())
		return nil, false
	}
	g.logger.Error().Err(err).Str("device", device).Str("button", button).Msg("waveform lookup")
	c.String(http.StatusInternalServerError, "Button '%s' on device '%s' lookup failed.", button, device)
	return nil, false
}
