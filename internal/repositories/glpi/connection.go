package glpi

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"
)

type Config struct {
	// Connection settings
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	PoolSize       int

	// TLS settings
	InsecureSkipVerify bool
}

// Client talks to the GLPI REST API. A single Client is shared by every
// request and every aggregator worker.
type Client struct {
	HTTP   *http.Client
	config *Config
}

// NewClient creates a new GLPI client with the provided configuration
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Set defaults
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = 3 * time.Second
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 6 * time.Second
	}
	if cfg.PoolSize == 0 {
		cfg.PoolSize = 20
	}
	if cfg.PoolSize < 0 {
		return nil, fmt.Errorf("invalid pool size %d", cfg.PoolSize)
	}

	dialer := &net.Dialer{
		Timeout:   cfg.ConnectTimeout,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		MaxIdleConns:          cfg.PoolSize,
		MaxIdleConnsPerHost:   cfg.PoolSize,
		MaxConnsPerHost:       cfg.PoolSize,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   cfg.ConnectTimeout,
		ResponseHeaderTimeout: cfg.ReadTimeout,
		TLSClientConfig: &tls.Config{
			// GLPI instances behind self-signed certificates are common on intranets
			InsecureSkipVerify: cfg.InsecureSkipVerify,
		},
	}

	return &Client{
		HTTP: &http.Client{
			Transport: transport,
			Timeout:   cfg.ConnectTimeout + cfg.ReadTimeout,
		},
		config: cfg,
	}, nil
}

// Close releases idle pooled connections.
func (c *Client) Close() {
	if t, ok := c.HTTP.Transport.(*http.Transport); ok {
		t.CloseIdleConnections()
	}
}
