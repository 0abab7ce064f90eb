// Package gateway forwards API requests to the identity and device services.
package gateway

import (
	"fmt"
	"net/http"
	"time"
)

// Service names recognized by the proxy
const (
	ServiceIdentity = "identity"
	ServiceDevice   = "device"
)

// forwardedHeaders are the request headers passed through to upstreams
var forwardedHeaders = []string{"Content-Type", "Accept", "Authorization"}

// Proxy forwards requests to the configured upstream services. Responses
// pass through with their upstream status and body unchanged.
type Proxy struct {
	identityURL string
	deviceURL   string
	client      *http.Client
}

func New(identityURL, deviceURL string) *Proxy {
	return &Proxy{
		identityURL: identityURL,
		deviceURL:   deviceURL,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

// Forward sends the incoming request to the named service, preserving the
// method, path, query, body and forwarded headers. The caller owns the
// returned response body.
func (p *Proxy) Forward(service, path string, r *http.Request) (*http.Response, error) {
	base, err := p.baseURL(service)
	if err != nil {
		return nil, err
	}

	target := base + path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, target, r.Body)
	if err != nil {
		return nil, err
	}
	for _, name := range forwardedHeaders {
		if value := r.Header.Get(name); value != "" {
			req.Header.Set(name, value)
		}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s service: %w", service, err)
	}
	return resp, nil
}

// ServiceInfo describes the configured upstreams
func (p *Proxy) ServiceInfo() map[string]interface{} {
	return map[string]interface{}{
		"services": map[string]interface{}{
			ServiceIdentity: map[string]interface{}{
				"url":       p.identityURL,
				"endpoints": []string{"/api/v1/auth", "/api/v1/users", "/api/v1/profiles", "/health"},
			},
			ServiceDevice: map[string]interface{}{
				"url":       p.deviceURL,
				"endpoints": []string{"/api/v1/devices", "/api/v1/sessions", "/health"},
			},
		},
	}
}

func (p *Proxy) baseURL(service string) (string, error) {
	switch service {
	case ServiceIdentity:
		return p.identityURL, nil
	case ServiceDevice:
		return p.deviceURL, nil
	default:
		return "", fmt.Errorf("unknown service %q", service)
	}
}
