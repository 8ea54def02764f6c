package wistia

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

var validate = validator.New()

// UploadRequest holds the Upload API parameters that may travel in a query
// string or url-encoded form. They encode in declaration order and unset
// optional fields are omitted.
//
// See https://wistia.com/support/developers/upload-api#the-request
type UploadRequest struct {
	// AccessToken is the 64 character API token.
	AccessToken string `validate:"required"`
	// URL is the web location of the media to import. URL uploads only.
	URL *string
	// ProjectID is the hashed id of the destination project. When omitted
	// Wistia creates an "Uploads_YYYY-MM-DD" project.
	ProjectID *string
	// Name is the display name, limited to 255 characters. Defaults to the
	// filename.
	Name *string
	// Description may contain basic HTML, which Wistia sanitizes.
	Description *string
	// ContactID is an integer contact id; defaults to the account owner.
	ContactID *string
}

// Encode returns the url-encoded parameters.
func (r UploadRequest) Encode() string {
	var q queryBuilder
	q.add("access_token", r.AccessToken).
		addOptional("url", r.URL).
		addOptional("project_id", r.ProjectID).
		addOptional("name", r.Name).
		addOptional("description", r.Description).
		addOptional("contact_id", r.ContactID)
	return q.String()
}

// UploadClient sends requests to the Wistia Upload API. Use it through the
// FileUploader, StreamUploader and URLUploader builders.
type UploadClient struct {
	accessToken string
	http        Doer
	endpoint    string
	userAgent   string
	log         zerolog.Logger
}

// NewUploadClient builds an UploadClient authenticating with accessToken.
func NewUploadClient(accessToken string, opts ...Option) *UploadClient {
	o := newOptions(opts)
	return &UploadClient{
		accessToken: accessToken,
		http:        o.http,
		endpoint:    o.uploadURL,
		userAgent:   o.userAgent,
		log:         o.logger,
	}
}

// NewUploadClientFromEnv builds an UploadClient with the token found in
// WISTIA_API_TOKEN.
func NewUploadClientFromEnv(opts ...Option) (*UploadClient, error) {
	token, err := tokenFromEnv()
	if err != nil {
		return nil, err
	}
	return NewUploadClient(token, opts...), nil
}

// BuildURL returns the Upload API endpoint with the shared query parameters
// (access_token, project_id, name, contact_id). URL and Description are
// never put in the query string by BuildURL.
func (c *UploadClient) BuildURL(params UploadRequest) string {
	params.URL = nil
	params.Description = nil
	return c.endpoint + "?" + params.Encode()
}

func (c *UploadClient) upload(ctx context.Context, fields uploadFields, p payload) (*UploadResponse, error) {
	params := fields.params(c.accessToken)
	if err := validate.Struct(params); err != nil {
		return nil, fmt.Errorf("invalid upload request: %w", err)
	}
	if err := validate.Struct(p); err != nil {
		return nil, fmt.Errorf("invalid upload request: %w", err)
	}

	req, requestURL, err := p.request(ctx, c, params)
	if err != nil {
		return nil, err
	}
	return c.makeRequest(req, requestURL)
}

// makeRequest sends req, classifies the response and decodes it. The request
// body is closed before returning, which stops a multipart writer blocked on
// a Doer that never read it.
func (c *UploadClient) makeRequest(req *http.Request, requestURL string) (*UploadResponse, error) {
	if req.Body != nil {
		defer func() { _ = req.Body.Close() }()
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := roundTrip(&c.log, c.http, req)
	if err != nil {
		return nil, err
	}
	var payload UploadResponse
	if err := finish(&c.log, requestURL, resp, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// uploadFields are the optional parameters shared by every uploader.
type uploadFields struct {
	projectID   *string
	name        *string
	description *string
	contactID   *string
}

func (f uploadFields) params(accessToken string) UploadRequest {
	return UploadRequest{
		AccessToken: accessToken,
		ProjectID:   f.projectID,
		Name:        f.name,
		Description: f.description,
		ContactID:   f.contactID,
	}
}

// payload is the body source of an upload: a file path, a stream or a URL.
// Exactly one is held by each uploader.
type payload interface {
	// request builds the HTTP request and returns the URL used to report
	// errors.
	request(ctx context.Context, c *UploadClient, params UploadRequest) (*http.Request, string, error)
}

// multipartRequest posts a multipart form whose "file" part streams src. The
// description, when set, is sent as its own text part instead of in the
// query string.
func multipartRequest(ctx context.Context, c *UploadClient, params UploadRequest, src io.Reader, closeSrc func(), filename string) (*http.Request, string, error) {
	requestURL := c.BuildURL(params)

	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)
	go func() {
		defer closeSrc()
		err := writeForm(form, src, filename, params.Description)
		if err == nil {
			err = form.Close()
		}
		_ = pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, pr)
	if err != nil {
		_ = pr.Close()
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	return req, requestURL, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeForm(form *multipart.Writer, src io.Reader, filename string, description *string) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(filename)))
	header.Set("Content-Type", contentTypeFor(filename))

	part, err := form.CreatePart(header)
	if err != nil {
		return fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("write file part: %w", err)
	}
	if description != nil {
		if err := form.WriteField("description", *description); err != nil {
			return fmt.Errorf("write description: %w", err)
		}
	}
	return nil
}

func contentTypeFor(filename string) string {
	if ct := mime.TypeByExtension(filepath.Ext(filename)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
