// Package httpclient wraps net/http with browser-like defaults for polling pages.
package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"

	"github.com/aleister1102/tixwatch/internal/common"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
)

// HTTPRequest represents an HTTP request
type HTTPRequest struct {
	URL     string
	Method  string
	Headers map[string]string
	Body    io.Reader
	Context context.Context
}

// HTTPResponse represents an HTTP response
type HTTPResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	// Truncated is set when the body was cut at MaxContentSize
	Truncated bool
}

// HTTPClient wraps net/http.Client
type HTTPClient struct {
	client *http.Client
	config HTTPClientConfig
	logger zerolog.Logger
}

// NewHTTPClient creates a new HTTP client with the given configuration using net/http
func NewHTTPClient(config HTTPClientConfig, logger zerolog.Logger) (*HTTPClient, error) {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          config.MaxIdleConns,
		MaxIdleConnsPerHost:   config.MaxIdleConnsPerHost,
		IdleConnTimeout:       config.IdleConnTimeout,
		TLSHandshakeTimeout:   config.TLSHandshakeTimeout,
		ExpectContinueTimeout: config.ExpectContinueTimeout,
		DialContext: (&net.Dialer{
			Timeout:   config.DialTimeout,
			KeepAlive: config.KeepAlive,
		}).DialContext,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: config.InsecureSkipVerify,
		},
	}

	if config.EnableHTTP2 {
		if err := http2.ConfigureTransport(transport); err != nil {
			logger.Warn().Err(err).Msg("Failed to configure HTTP/2, falling back to HTTP/1.1")
		}
	}

	if config.Proxy != "" {
		proxyURL, err := url.Parse(config.Proxy)
		if err != nil {
			return nil, common.WrapError(err, "failed to parse proxy URL")
		}
		transport.Proxy = http.ProxyURL(proxyURL)
		logger.Info().Str("proxy", config.Proxy).Msg("HTTP client configured with proxy")
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   config.Timeout,
	}

	if !config.FollowRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	} else if config.MaxRedirects > 0 {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			if len(via) >= config.MaxRedirects {
				return fmt.Errorf("stopped after %d redirects", config.MaxRedirects)
			}
			return nil
		}
	}

	logger.Debug().
		Dur("timeout", config.Timeout).
		Bool("insecure_skip_verify", config.InsecureSkipVerify).
		Bool("follow_redirects", config.FollowRedirects).
		Bool("http2_enabled", config.EnableHTTP2).
		Msg("HTTP client created")

	return &HTTPClient{
		client: client,
		config: config,
		logger: logger,
	}, nil
}

// Do performs a single HTTP request. It never retries.
func (c *HTTPClient) Do(req *HTTPRequest) (*HTTPResponse, error) {
	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, req.Body)
	if err != nil {
		return nil, common.WrapError(err, "failed to create HTTP request")
	}

	// Config headers first, request headers can override them
	for key, value := range c.config.CustomHeaders {
		httpReq.Header.Set(key, value)
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
	if c.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.config.UserAgent)
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "*/*")
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, common.WrapError(err, "HTTP request failed")
	}
	defer resp.Body.Close()

	limit := int64(c.config.MaxContentSize)
	var body io.Reader = resp.Body
	if limit > 0 {
		// One byte past the cap tells a full body from a cut one
		body = io.LimitReader(resp.Body, limit+1)
	}

	bodyBytes, err := io.ReadAll(body)
	if err != nil {
		return nil, common.WrapError(err, "failed to read response body")
	}

	truncated := limit > 0 && int64(len(bodyBytes)) > limit
	if truncated {
		bodyBytes = bodyBytes[:limit]
		c.logger.Warn().
			Str("url", req.URL).
			Int("max_content_size", c.config.MaxContentSize).
			Msg("Response body exceeded size limit and was truncated")
	}

	httpResp := &HTTPResponse{
		StatusCode: resp.StatusCode,
		Headers:    make(map[string]string, len(resp.Header)),
		Body:       bodyBytes,
		Truncated:  truncated,
	}
	for key, values := range resp.Header {
		if len(values) > 0 {
			httpResp.Headers[key] = values[0]
		}
	}

	return httpResp, nil
}

// FetchContentResult holds results from FetchContent.
type FetchContentResult struct {
	Content        []byte
	ContentType    string
	HTTPStatusCode int
	Truncated      bool
}

// FetchContent issues a cache-bypassing GET. Any non-2xx status is returned as *common.HTTPError.
func (c *HTTPClient) FetchContent(ctx context.Context, targetURL string) (*FetchContentResult, error) {
	resp, err := c.Do(&HTTPRequest{
		URL:    targetURL,
		Method: http.MethodGet,
		Headers: map[string]string{
			"Cache-Control": "no-cache",
			"Pragma":        "no-cache",
		},
		Context: ctx,
	})
	if err != nil {
		return nil, err
	}

	result := &FetchContentResult{
		Content:        resp.Body,
		ContentType:    resp.Headers["Content-Type"],
		HTTPStatusCode: resp.StatusCode,
		Truncated:      resp.Truncated,
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn().Str("url", targetURL).Int("status_code", resp.StatusCode).Msg("Received non-2xx HTTP status")
		return result, common.NewHTTPErrorWithURL(resp.StatusCode, http.StatusText(resp.StatusCode), targetURL)
	}

	c.logger.Debug().
		Str("url", targetURL).
		Int("content_size", len(result.Content)).
		Str("content_type", result.ContentType).
		Msg("Successfully fetched content")

	return result, nil
}

// PostJSON marshals payload and POSTs it. Non-2xx responses are returned as *common.HTTPError.
func (c *HTTPClient) PostJSON(ctx context.Context, targetURL string, payload interface{}) (*HTTPResponse, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, common.WrapError(err, "failed to marshal JSON payload")
	}

	resp, err := c.Do(&HTTPRequest{
		URL:     targetURL,
		Method:  http.MethodPost,
		Headers: map[string]string{"Content-Type": "application/json", "Accept": "application/json"},
		Body:    bytes.NewReader(data),
		Context: ctx,
	})
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, common.NewHTTPErrorWithURL(resp.StatusCode, string(truncate(resp.Body, 256)), targetURL)
	}
	return resp, nil
}

func truncate(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}
