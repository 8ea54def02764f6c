package wistia

import (
	"errors"
	"net/url"
	"strings"
)

// SourceURL returns the secure URL of the originally uploaded file.
func (m Media) SourceURL() (string, error) {
	return m.AssetURL("")
}

// AssetURL returns the HTTPS delivery URL for assetType, defaulting to
// OriginalAsset when assetType is empty.
//
// The delivery id is the last path segment of the asset URL, cut before the
// last ".bin"; it is served from embed-ssl.wistia.com as DefaultFilename.
func (m Media) AssetURL(assetType string) (string, error) {
	raw, err := m.AssetURLInsecure(assetType)
	if err != nil {
		return "", err
	}

	idx := strings.LastIndexByte(raw, '/')
	if idx < 0 {
		return "", &url.Error{Op: "parse", URL: raw, Err: errors.New("missing delivery id path segment")}
	}
	id := raw[idx+1:]
	if cut := strings.LastIndex(id, ".bin"); cut >= 0 {
		id = id[:cut]
	}
	return secureDeliveryURL + id + "/" + DefaultFilename, nil
}

// AssetURLInsecure returns the URL of the first asset whose type equals
// assetType (OriginalAsset when empty), as reported by the API.
func (m Media) AssetURLInsecure(assetType string) (string, error) {
	if assetType == "" {
		assetType = OriginalAsset
	}
	for _, asset := range m.Assets {
		if asset.Type == assetType {
			return asset.URL, nil
		}
	}

	valid := make([]string, 0, len(m.Assets))
	for _, asset := range m.Assets {
		valid = append(valid, asset.Type)
	}
	return "", &AssetNotFoundError{
		Type:       assetType,
		VideoID:    m.HashedID,
		ValidTypes: valid,
	}
}
