package llm

import (
	"fmt"
	"net/http"
	"net/url"
)

// NewProxyFunc returns the proxy selector for LLM requests. An empty proxyURL
// falls back to HTTP_PROXY, HTTPS_PROXY and NO_PROXY.
func NewProxyFunc(proxyURL string) (func(*http.Request) (*url.URL, error), error) {
	if proxyURL == "" {
		return http.ProxyFromEnvironment, nil
	}

	parsed, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy URL %q: %w", proxyURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid proxy URL %q: scheme and host are required", proxyURL)
	}
	return http.ProxyURL(parsed), nil
}

// newHTTPClient builds the client the chat providers send requests with
func newHTTPClient(config Config) (*http.Client, error) {
	proxy, err := NewProxyFunc(config.Proxy)
	if err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = proxy
	return &http.Client{Transport: transport}, nil
}
