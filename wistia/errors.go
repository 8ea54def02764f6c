package wistia

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMediaIsRequired is returned when an operation needs either a media id or
// a Media value and received neither.
var ErrMediaIsRequired = errors.New("wistia: a media id or media is required")

// FileNotFoundError reports an upload source path that does not exist.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("wistia: no such file: the source file path %q should exist", e.Path)
}

// EnvVarNotFoundError reports a missing environment variable.
type EnvVarNotFoundError struct {
	Name string
}

func (e *EnvVarNotFoundError) Error() string {
	return fmt.Sprintf("wistia: environment variable %s must be set", e.Name)
}

// AssetNotFoundError reports that a media has no asset of the requested type.
// ValidTypes lists every asset type present on the media, in API order.
type AssetNotFoundError struct {
	Type       string
	VideoID    string
	ValidTypes []string
}

func (e *AssetNotFoundError) Error() string {
	return fmt.Sprintf("wistia: %s: no such asset (%s) for video; valid assets: [%s]",
		e.VideoID, e.Type, strings.Join(e.ValidTypes, ", "))
}

// WistiaError is the error payload returned by the Wistia API. When the body
// is not JSON, Message holds the raw response text and Code/Detail are nil.
type WistiaError struct {
	Message string  `json:"error"`
	Code    *string `json:"code,omitempty"`
	Detail  *string `json:"detail,omitempty"`
}

// RequestError is returned when the API answers with a 4xx or 5xx status.
type RequestError struct {
	StatusCode int
	Reason     string
	Err        WistiaError
}

func (e *RequestError) Error() string {
	var b strings.Builder
	b.WriteString("wistia: ")
	b.WriteString(e.Reason)
	if e.Err.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Err.Message)
	}
	if e.Err.Code != nil && *e.Err.Code != "" {
		fmt.Fprintf(&b, " (code %s)", *e.Err.Code)
	}
	if e.Err.Detail != nil && *e.Err.Detail != "" {
		fmt.Fprintf(&b, ": %s", *e.Err.Detail)
	}
	return b.String()
}

// IsNotFound reports whether err is a RequestError with status 404.
func IsNotFound(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.StatusCode == 404
}
