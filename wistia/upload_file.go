package wistia

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
)

// FileUploader uploads a local file as a multipart form. Setters return an
// updated copy; nothing is validated until Send.
type FileUploader struct {
	client *UploadClient
	fields uploadFields
	file   filePayload
}

// NewFileUploader creates a FileUploader for path using the token in
// WISTIA_API_TOKEN.
func NewFileUploader(path string, opts ...Option) (FileUploader, error) {
	client, err := NewUploadClientFromEnv(opts...)
	if err != nil {
		return FileUploader{}, err
	}
	return client.File(path), nil
}

// File starts an upload of the file at path.
func (c *UploadClient) File(path string) FileUploader {
	return FileUploader{client: c, file: filePayload{Path: path}}
}

// ProjectID sets the hashed id of the destination project.
func (u FileUploader) ProjectID(projectID string) FileUploader {
	u.fields.projectID = ptr(projectID)
	return u
}

// Name sets the display name of the media.
func (u FileUploader) Name(name string) FileUploader {
	u.fields.name = ptr(name)
	return u
}

// Description sets the media description, sent as a multipart field.
func (u FileUploader) Description(description string) FileUploader {
	u.fields.description = ptr(description)
	return u
}

// ContactID sets the Wistia contact id.
func (u FileUploader) ContactID(contactID string) FileUploader {
	u.fields.contactID = ptr(contactID)
	return u
}

// Send uploads the file. A path that does not exist yields a
// *FileNotFoundError before any request is made.
func (u FileUploader) Send(ctx context.Context) (*UploadResponse, error) {
	if u.client == nil {
		return nil, errors.New("wistia: file uploader has no client")
	}
	return u.client.upload(ctx, u.fields, u.file)
}

type filePayload struct {
	Path string `validate:"required"`
}

func (p filePayload) request(ctx context.Context, c *UploadClient, params UploadRequest) (*http.Request, string, error) {
	f, err := os.Open(p.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", &FileNotFoundError{Path: p.Path}
		}
		return nil, "", err
	}
	return multipartRequest(ctx, c, params, f, func() { _ = f.Close() }, filepath.Base(p.Path))
}
