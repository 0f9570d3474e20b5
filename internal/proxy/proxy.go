package proxy

import (
	"math/rand"
	"net/http"
	"net/url"

	"github.com/baldidon/transfermarkt-api/internal/config"
)

// Manager handles proxy configuration and rotation
type Manager struct {
	Config *config.ProxyConfig
}

// NewManager creates a new proxy manager
func NewManager(config *config.ProxyConfig) *Manager {
	return &Manager{
		Config: config,
	}
}

// Enabled reports whether requests should go through a proxy at all.
func (m *Manager) Enabled() bool {
	return m != nil && m.Config != nil && m.Config.Enabled && len(m.Config.List) > 0
}

// GetProxyURL returns a proxy URL from the configuration, or nil when
// proxying is disabled.
func (m *Manager) GetProxyURL() (*url.URL, error) {
	if !m.Enabled() {
		return nil, nil
	}

	// Select a proxy
	proxyStr := m.Config.List[0]
	if m.Config.Rotate && len(m.Config.List) > 1 {
		proxyStr = m.Config.List[rand.Intn(len(m.Config.List))]
	}

	proxyURL, err := url.Parse(proxyStr)
	if err != nil {
		return nil, err
	}

	// Add authentication if provided
	if m.Config.Auth.Username != "" && m.Config.Auth.Password != "" {
		proxyURL.User = url.UserPassword(m.Config.Auth.Username, m.Config.Auth.Password)
	}

	return proxyURL, nil
}

// ApplyToTransport routes transport through the configured proxies. With
// rotation on, every new request picks its proxy independently.
func (m *Manager) ApplyToTransport(transport *http.Transport) {
	if !m.Enabled() {
		return
	}
	transport.Proxy = func(*http.Request) (*url.URL, error) {
		return m.GetProxyURL()
	}
}
