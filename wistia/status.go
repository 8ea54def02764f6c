package wistia

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
)

// raiseForStatus returns a *RequestError when resp carries a 4xx or 5xx
// status. Any other status, including 1xx, 3xx and codes of 600 and above,
// is treated as success and leaves the body unread. A request URL without a
// host is reported as-is, minus its query string.
func raiseForStatus(requestURL string, resp *http.Response) error {
	code := resp.StatusCode

	var class string
	switch {
	case code >= 400 && code < 500:
		class = "Client"
	case code >= 500 && code < 600:
		class = "Server"
	default:
		return nil
	}

	target, err := hostWithPath(requestURL)
	if err != nil {
		target = stripQuery(requestURL)
	}
	phrase := http.StatusText(code)
	if phrase == "" {
		phrase = "Unknown"
	}
	reason := fmt.Sprintf("%d %s Error: %s for url: %s", code, class, phrase, target)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read error response: %w", err)
	}

	var apiErr WistiaError
	if err := json.Unmarshal(body, &apiErr); err != nil {
		apiErr = WistiaError{Message: strings.TrimSpace(string(body))}
	}

	return &RequestError{
		StatusCode: code,
		Reason:     reason,
		Err:        apiErr,
	}
}

// hostWithPath renders rawURL as host+path, dropping scheme, port, query and
// fragment. An empty path renders as "/".
func hostWithPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse request url: %w", err)
	}
	host := u.Hostname()
	if host == "" {
		return "", &url.Error{Op: "parse", URL: rawURL, Err: fmt.Errorf("missing host")}
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return host + path, nil
}
