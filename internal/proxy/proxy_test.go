package proxy

import (
	"net/http"
	"testing"

	"github.com/baldidon/transfermarkt-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProxyURL_Disabled(t *testing.T) {
	t.Parallel()

	m := NewManager(&config.ProxyConfig{List: []string{"http://p1:8080"}})
	u, err := m.GetProxyURL()
	require.NoError(t, err)
	assert.Nil(t, u)

	var nilManager *Manager
	assert.False(t, nilManager.Enabled())
}

func TestGetProxyURL_WithAuth(t *testing.T) {
	t.Parallel()

	cfg := &config.ProxyConfig{Enabled: true, List: []string{"http://p1:8080"}}
	cfg.Auth.Username = "u"
	cfg.Auth.Password = "p"

	u, err := NewManager(cfg).GetProxyURL()
	require.NoError(t, err)
	assert.Equal(t, "http://u:p@p1:8080", u.String())
}

func TestGetProxyURL_RotatesWithinList(t *testing.T) {
	t.Parallel()

	list := []string{"http://p1:8080", "http://p2:8080", "http://p3:8080"}
	m := NewManager(&config.ProxyConfig{Enabled: true, Rotate: true, List: list})

	for i := 0; i < 20; i++ {
		u, err := m.GetProxyURL()
		require.NoError(t, err)
		assert.Contains(t, list, u.String())
	}
}

func TestApplyToTransport(t *testing.T) {
	t.Parallel()

	tr := &http.Transport{}
	NewManager(&config.ProxyConfig{}).ApplyToTransport(tr)
	assert.Nil(t, tr.Proxy)

	NewManager(&config.ProxyConfig{Enabled: true, List: []string{"http://p1:8080"}}).ApplyToTransport(tr)
	require.NotNil(t, tr.Proxy)

	req, err := http.NewRequest(http.MethodGet, "https://www.transfermarkt.com/", nil)
	require.NoError(t, err)
	u, err := tr.Proxy(req)
	require.NoError(t, err)
	assert.Equal(t, "p1:8080", u.Host)
}
