package wistia

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Doer sends HTTP requests. *http.Client satisfies it; tests and callers that
// share a pooled client can pass their own.
//
// Implementations should close the request body, as *http.Client does. The
// upload clients also close it once Do returns, so a streamed multipart body
// is released even when Do fails without reading it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Ensure *http.Client implements Doer at compile time.
var _ Doer = (*http.Client)(nil)

type options struct {
	http      Doer
	dataURL   string
	uploadURL string
	userAgent string
	logger    zerolog.Logger
}

// Option configures a Client or UploadClient.
type Option func(*options)

// WithHTTPClient sets the transport used to send requests. The default is a
// new *http.Client without a timeout.
func WithHTTPClient(client Doer) Option {
	return func(o *options) {
		if client != nil {
			o.http = client
		}
	}
}

// WithDataURL overrides the Data API base URL.
func WithDataURL(base string) Option {
	return func(o *options) {
		if trimmed := strings.TrimRight(strings.TrimSpace(base), "/"); trimmed != "" {
			o.dataURL = trimmed
		}
	}
}

// WithUploadURL overrides the Upload API endpoint.
func WithUploadURL(endpoint string) Option {
	return func(o *options) {
		if trimmed := strings.TrimSpace(endpoint); trimmed != "" {
			o.uploadURL = trimmed
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		if trimmed := strings.TrimSpace(ua); trimmed != "" {
			o.userAgent = trimmed
		}
	}
}

// WithLogger sets the logger for request tracing (debug) and API failures
// (error). The default discards everything.
//
//nolint:gocritic // zerolog.Logger is a value type
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(opts []Option) options {
	o := options{
		dataURL:   DataAPI,
		uploadURL: UploadAPI,
		userAgent: defaultUserAgent,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.http == nil {
		o.http = &http.Client{}
	}
	return o
}

func tokenFromEnv() (string, error) {
	token, ok := os.LookupEnv(EnvVarName)
	if !ok || strings.TrimSpace(token) == "" {
		return "", &EnvVarNotFoundError{Name: EnvVarName}
	}
	return strings.TrimSpace(token), nil
}

// authToken turns an access token into an Authorization header value.
func authToken(token string) string {
	return "Bearer " + token
}

// roundTrip sends req and logs its outcome. Transport errors are returned
// as-is, except that the query string (which may hold the access token) is
// removed from *url.Error values.
func roundTrip(log *zerolog.Logger, client Doer, req *http.Request) (*http.Response, error) {
	requestID := uuid.NewString()
	target := req.URL.Host + req.URL.Path
	start := time.Now()

	resp, err := client.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = stripQuery(urlErr.URL)
		}
		log.Debug().
			Str("request_id", requestID).
			Str("method", req.Method).
			Str("url", target).
			Err(err).
			Msg("wistia request error")
		return nil, err
	}

	log.Debug().
		Str("request_id", requestID).
		Str("method", req.Method).
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("wistia request completed")
	return resp, nil
}

// finish classifies resp and decodes a successful body into dest.
func finish(log *zerolog.Logger, requestURL string, resp *http.Response, dest any) error {
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(log, requestURL, resp); err != nil {
		return err
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func stripQuery(rawURL string) string {
	if idx := strings.IndexByte(rawURL, '?'); idx >= 0 {
		return rawURL[:idx]
	}
	return rawURL
}

// checkStatus runs raiseForStatus and logs the API failure, if any.
func checkStatus(log *zerolog.Logger, requestURL string, resp *http.Response) error {
	err := raiseForStatus(requestURL, resp)
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		log.Error().
			Err(reqErr).
			Int("status", reqErr.StatusCode).
			Str("url", stripQuery(requestURL)).
			Msg("wistia request failed")
	}
	return err
}
