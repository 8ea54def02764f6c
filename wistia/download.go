package wistia

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DownloadAssetRequest selects an asset to download. Either MediaID or Media
// must be set; when both are, Media is used and no lookup is made.
type DownloadAssetRequest struct {
	MediaID string
	Media   *Media
	// AssetType defaults to OriginalAsset.
	AssetType string
	// FilePath, when set, receives the downloaded bytes.
	FilePath string
}

// DownloadAsset fetches the secure delivery URL of an asset and returns its
// content, writing it to req.FilePath when one is given.
func (c *Client) DownloadAsset(ctx context.Context, req DownloadAssetRequest) ([]byte, error) {
	media := req.Media
	if media == nil {
		id := strings.TrimSpace(req.MediaID)
		if id == "" {
			return nil, ErrMediaIsRequired
		}
		fetched, err := c.GetMedia(ctx, id)
		if err != nil {
			return nil, err
		}
		media = fetched
	}

	assetURL, err := media.AssetURL(req.AssetType)
	if err != nil {
		return nil, err
	}

	data, err := c.fetch(ctx, assetURL)
	if err != nil {
		return nil, err
	}

	if req.FilePath != "" {
		if dir := filepath.Dir(req.FilePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create download dir: %w", err)
			}
		}
		if err := os.WriteFile(req.FilePath, data, 0o644); err != nil {
			return nil, fmt.Errorf("write asset: %w", err)
		}
	}
	return data, nil
}
