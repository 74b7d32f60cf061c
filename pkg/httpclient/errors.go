package httpclient

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// UnknownStatusText is reported when no response was received at all.
const UnknownStatusText = "Unknown Error"

// Error describes a failed exchange with a backend: a transport failure
// (StatusCode 0), a non-2xx response or an undecodable body.
type Error struct {
	Method     string
	URL        string
	StatusCode int
	StatusText string
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", e.Method, e.URL)
	if e.StatusCode > 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.StatusText != "" {
		fmt.Fprintf(&b, " (%s)", e.StatusText)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// StatusText extracts the diagnostic status text carried by err.
func StatusText(err error) string {
	var httpErr *Error
	if errors.As(err, &httpErr) {
		return httpErr.StatusText
	}
	return UnknownStatusText
}

// CheckResponse converts a non-2xx response into an *Error.
func CheckResponse(method, url string, resp Response) error {
	if resp == nil {
		return &Error{Method: method, URL: url, StatusText: UnknownStatusText, Err: errors.New("empty response")}
	}
	code := resp.StatusCode()
	if code >= 200 && code < 300 {
		return nil
	}
	var cause error
	if snippet := ReadBodySnippet(resp.Body()); snippet != "" {
		cause = errors.New(snippet)
	}
	return &Error{
		Method:     method,
		URL:        url,
		StatusCode: code,
		StatusText: reasonPhrase(code, resp.Status()),
		Err:        cause,
	}
}

// reasonPhrase prefers the phrase sent by the server ("404 Not Found" -> "Not Found").
func reasonPhrase(code int, status string) string {
	status = strings.TrimSpace(status)
	if rest, ok := strings.CutPrefix(status, strconv.Itoa(code)); ok {
		if phrase := strings.TrimSpace(rest); phrase != "" {
			return phrase
		}
	}
	if text := http.StatusText(code); text != "" {
		return text
	}
	return UnknownStatusText
}

// ReadBodySnippet returns at most the first 512 bytes of body, trimmed.
func ReadBodySnippet(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if len(body) > 512 {
		body = body[:512]
	}
	return strings.TrimSpace(string(body))
}
