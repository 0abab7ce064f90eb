package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vidstreamhq/vidstream/internal/gateway"
	"github.com/vidstreamhq/vidstream/internal/model"
)

// ProxyHandler exposes the gateway's forwarding routes
type ProxyHandler struct {
	proxy *gateway.Proxy
}

func NewProxyHandler(proxy *gateway.Proxy) *ProxyHandler {
	return &ProxyHandler{proxy: proxy}
}

// Identity forwards /identity/*path to the identity service
func (h *ProxyHandler) Identity(c *gin.Context) {
	h.forward(c, gateway.ServiceIdentity)
}

// Device forwards /device/*path to the device service
func (h *ProxyHandler) Device(c *gin.Context) {
	h.forward(c, gateway.ServiceDevice)
}

// ServiceInfo lists the configured upstream services
func (h *ProxyHandler) ServiceInfo(c *gin.Context) {
	c.JSON(http.StatusOK, h.proxy.ServiceInfo())
}

func (h *ProxyHandler) forward(c *gin.Context, service string) {
	resp, err := h.proxy.Forward(service, c.Param("path"), c.Request)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, model.ErrorResponse{
			Error:   "service unavailable",
			Message: err.Error(),
		})
		return
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}

	c.Status(resp.StatusCode)
	c.Header("Content-Type", contentType)
	_, _ = io.Copy(c.Writer, resp.Body)
}
