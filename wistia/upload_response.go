package wistia

import "github.com/goccy/go-json"

// UploadResponse is the media record returned by the Upload API.
//
// See https://wistia.com/support/developers/upload-api#the-response
type UploadResponse struct {
	ID        uint64    `json:"id"`
	AccountID uint64    `json:"account_id"`
	Name      string    `json:"name"`
	Type      MediaType `json:"type"`
	Created   string    `json:"created"`
	Updated   string    `json:"updated"`
	// Duration is zero for URL imports, which are not processed yet.
	Duration float64 `json:"duration"`
	HashedID string  `json:"hashed_id"`
	// Description is nil when the API returns an empty string.
	Description *string     `json:"description,omitempty"`
	Progress    float64     `json:"progress"`
	Status      MediaStatus `json:"status"`
	Thumbnail   Thumbnail   `json:"thumbnail"`
}

// UnmarshalJSON decodes an upload response, mapping an empty description to
// nil and a missing status to MediaStatusQueued.
func (r *UploadResponse) UnmarshalJSON(data []byte) error {
	type plain UploadResponse
	aux := struct {
		*plain
		Description *string `json:"description"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.Description = nil
	if aux.Description != nil && *aux.Description != "" {
		r.Description = aux.Description
	}
	if r.Status == "" {
		r.Status = MediaStatusQueued
	}
	return nil
}
