package wistia

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"path"

	"github.com/rs/zerolog"
)

// StreamUploader uploads the content of an io.Reader as a multipart form.
// Copies made by the setters share the same reader, so only one of them
// should be sent.
type StreamUploader struct {
	client *UploadClient
	fields uploadFields
	stream streamPayload
}

// NewStreamUploader creates a StreamUploader for r using the token in
// WISTIA_API_TOKEN. The upload is named DefaultFilename unless Filename is
// called.
func NewStreamUploader(r io.Reader, opts ...Option) (StreamUploader, error) {
	client, err := NewUploadClientFromEnv(opts...)
	if err != nil {
		return StreamUploader{}, err
	}
	return client.Stream(r, DefaultFilename), nil
}

// NewStreamUploaderFromURL downloads the public resource at rawURL into
// memory and returns a StreamUploader for it, using the token in
// WISTIA_API_TOKEN.
func NewStreamUploaderFromURL(ctx context.Context, rawURL string, opts ...Option) (StreamUploader, error) {
	client, err := NewUploadClientFromEnv(opts...)
	if err != nil {
		return StreamUploader{}, err
	}
	return client.StreamFromURL(ctx, rawURL)
}

// Stream starts an upload of r named filename. An empty filename uses
// DefaultFilename.
func (c *UploadClient) Stream(r io.Reader, filename string) StreamUploader {
	if filename == "" {
		filename = DefaultFilename
	}
	return StreamUploader{client: c, stream: streamPayload{Reader: r, Filename: filename}}
}

// StreamFromURL downloads rawURL with the client's transport and starts an
// upload of the downloaded bytes. The filename is taken from the URL path
// when it has an extension, otherwise DefaultFilename is used.
func (c *UploadClient) StreamFromURL(ctx context.Context, rawURL string) (StreamUploader, error) {
	data, err := fetchBytes(ctx, &c.log, c.http, c.userAgent, rawURL)
	if err != nil {
		return StreamUploader{}, err
	}
	return c.Stream(bytes.NewReader(data), filenameFromURL(rawURL)), nil
}

// FetchStream downloads the full body of rawURL into a seekable reader.
// Error statuses are reported as *RequestError.
func FetchStream(ctx context.Context, client Doer, rawURL string) (*bytes.Reader, error) {
	if client == nil {
		client = &http.Client{}
	}
	nop := zerolog.Nop()
	data, err := fetchBytes(ctx, &nop, client, defaultUserAgent, rawURL)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

// Stream replaces the reader to upload.
func (u StreamUploader) Stream(r io.Reader) StreamUploader {
	u.stream.Reader = r
	return u
}

// Filename sets the filename reported for the upload.
func (u StreamUploader) Filename(filename string) StreamUploader {
	u.stream.Filename = filename
	return u
}

// ProjectID sets the hashed id of the destination project.
func (u StreamUploader) ProjectID(projectID string) StreamUploader {
	u.fields.projectID = ptr(projectID)
	return u
}

// Name sets the display name of the media.
func (u StreamUploader) Name(name string) StreamUploader {
	u.fields.name = ptr(name)
	return u
}

// Description sets the media description, sent as a multipart field.
func (u StreamUploader) Description(description string) StreamUploader {
	u.fields.description = ptr(description)
	return u
}

// ContactID sets the Wistia contact id.
func (u StreamUploader) ContactID(contactID string) StreamUploader {
	u.fields.contactID = ptr(contactID)
	return u
}

// Send uploads the stream. If the reader is also an io.Closer it is closed
// once the body has been written.
func (u StreamUploader) Send(ctx context.Context) (*UploadResponse, error) {
	if u.client == nil {
		return nil, errors.New("wistia: stream uploader has no client")
	}
	return u.client.upload(ctx, u.fields, u.stream)
}

type streamPayload struct {
	Reader   io.Reader `validate:"required"`
	Filename string    `validate:"required"`
}

func (p streamPayload) request(ctx context.Context, c *UploadClient, params UploadRequest) (*http.Request, string, error) {
	closeSrc := func() {}
	if closer, ok := p.Reader.(io.Closer); ok {
		closeSrc = func() { _ = closer.Close() }
	}
	return multipartRequest(ctx, c, params, p.Reader, closeSrc, p.Filename)
}

func filenameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return DefaultFilename
	}
	base := path.Base(u.Path)
	if path.Ext(base) == "" {
		return DefaultFilename
	}
	return base
}
