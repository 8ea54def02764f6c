package wistia

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// URLUploader asks Wistia to import media from a public URL. All parameters,
// including the description, are sent url-encoded in the request body.
type URLUploader struct {
	client *UploadClient
	fields uploadFields
	link   urlPayload
}

// NewURLUploader creates a URLUploader for link using the token in
// WISTIA_API_TOKEN.
func NewURLUploader(link string, opts ...Option) (URLUploader, error) {
	client, err := NewUploadClientFromEnv(opts...)
	if err != nil {
		return URLUploader{}, err
	}
	return client.URL(link), nil
}

// URL starts an import of the media at link.
func (c *UploadClient) URL(link string) URLUploader {
	return URLUploader{client: c, link: urlPayload{URL: link}}
}

// URL replaces the link to import.
func (u URLUploader) URL(link string) URLUploader {
	u.link.URL = link
	return u
}

// ProjectID sets the hashed id of the destination project.
func (u URLUploader) ProjectID(projectID string) URLUploader {
	u.fields.projectID = ptr(projectID)
	return u
}

// Name sets the display name of the media.
func (u URLUploader) Name(name string) URLUploader {
	u.fields.name = ptr(name)
	return u
}

// Description sets the media description.
func (u URLUploader) Description(description string) URLUploader {
	u.fields.description = ptr(description)
	return u
}

// ContactID sets the Wistia contact id.
func (u URLUploader) ContactID(contactID string) URLUploader {
	u.fields.contactID = ptr(contactID)
	return u
}

// Send posts the import request.
func (u URLUploader) Send(ctx context.Context) (*UploadResponse, error) {
	if u.client == nil {
		return nil, errors.New("wistia: url uploader has no client")
	}
	return u.client.upload(ctx, u.fields, u.link)
}

type urlPayload struct {
	URL string `validate:"required"`
}

func (p urlPayload) request(ctx context.Context, c *UploadClient, params UploadRequest) (*http.Request, string, error) {
	params.URL = ptr(p.URL)
	body := params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(body))
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req, c.endpoint, nil
}
