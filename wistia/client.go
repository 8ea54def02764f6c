package wistia

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// MediaService is the Data API surface implemented by *Client.
type MediaService interface {
	GetMedia(ctx context.Context, videoID string) (*Media, error)
	UpdateMedia(ctx context.Context, req UpdateMediaRequest) (*MediaInfo, error)
	DownloadAsset(ctx context.Context, req DownloadAssetRequest) ([]byte, error)
}

// Ensure Client implements MediaService at compile time.
var _ MediaService = (*Client)(nil)

// Client talks to the Wistia Data API. It is safe for concurrent use.
type Client struct {
	auth      string
	http      Doer
	baseURL   string
	userAgent string
	log       zerolog.Logger
}

// NewClient builds a Client authenticating with accessToken.
func NewClient(accessToken string, opts ...Option) *Client {
	o := newOptions(opts)
	return &Client{
		auth:      authToken(accessToken),
		http:      o.http,
		baseURL:   o.dataURL,
		userAgent: o.userAgent,
		log:       o.logger,
	}
}

// NewClientFromEnv builds a Client with the token found in WISTIA_API_TOKEN.
func NewClientFromEnv(opts ...Option) (*Client, error) {
	token, err := tokenFromEnv()
	if err != nil {
		return nil, err
	}
	return NewClient(token, opts...), nil
}

// GetMedia retrieves a media (typically a video) by hashed id.
//
// See https://wistia.com/support/developers/data-api#medias-show
func (c *Client) GetMedia(ctx context.Context, videoID string) (*Media, error) {
	var media Media
	if err := c.Get(ctx, c.mediaURL(videoID), &media); err != nil {
		return nil, err
	}
	return &media, nil
}

// UpdateMedia changes the name, still or description of a media.
//
// See https://wistia.com/support/developers/data-api#medias-update
func (c *Client) UpdateMedia(ctx context.Context, req UpdateMediaRequest) (*MediaInfo, error) {
	var info MediaInfo
	if err := c.Put(ctx, c.mediaURL(req.ID), req, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Get sends an authenticated GET to rawURL and decodes the JSON response
// into dest.
func (c *Client) Get(ctx context.Context, rawURL string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.send(req, rawURL, dest)
}

// Put sends an authenticated PUT to rawURL with params encoded as the query
// string. An empty encoding leaves rawURL untouched.
func (c *Client) Put(ctx context.Context, rawURL string, params Encoder, dest any) error {
	target := rawURL
	if params != nil {
		if query := params.Encode(); query != "" {
			target = rawURL + "?" + query
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.send(req, target, dest)
}

// PutWithBody sends an authenticated PUT to rawURL with body encoded as JSON.
func (c *Client) PutWithBody(ctx context.Context, rawURL string, body, dest any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, rawURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.send(req, rawURL, dest)
}

func (c *Client) send(req *http.Request, rawURL string, dest any) error {
	req.Header.Set("Authorization", c.auth)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := roundTrip(&c.log, c.http, req)
	if err != nil {
		return err
	}
	return finish(&c.log, rawURL, resp, dest)
}

// fetch downloads rawURL without credentials; delivery URLs are public.
func (c *Client) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	return fetchBytes(ctx, &c.log, c.http, c.userAgent, rawURL)
}

func (c *Client) mediaURL(videoID string) string {
	return c.baseURL + "/v1/medias/" + url.PathEscape(videoID) + ".json"
}

func fetchBytes(ctx context.Context, log *zerolog.Logger, client Doer, userAgent, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := roundTrip(log, client, req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(log, rawURL, resp); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return data, nil
}
