package restyutil

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
)

// The portal signals outcomes through status codes and redirect targets
// rather than payloads. These helpers centralize that inspection so call
// sites can branch on values instead of re-reading headers.

func IsRedirect(res *resty.Response) bool {
	return res.StatusCode() >= 300 && res.StatusCode() < 400
}

// RedirectLocation returns the parsed Location header of a redirect
// response. The response must be a 3xx with a Location header.
func RedirectLocation(res *resty.Response) (*url.URL, error) {
	if !IsRedirect(res) {
		return nil, fmt.Errorf("expected a redirect, got status %d", res.StatusCode())
	}
	raw := res.Header().Get("Location")
	if raw == "" {
		return nil, fmt.Errorf("redirect response carries no Location header")
	}
	location, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Location header: %w", err)
	}
	return location, nil
}

// ResponseCookie finds a Set-Cookie entry by exact name.
func ResponseCookie(res *resty.Response, name string) (*http.Cookie, bool) {
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// ResponseCookiePrefix finds a Set-Cookie entry whose name starts with the
// given prefix. Some of the portal's session cookies carry generated
// suffixes, the prefix is the only stable part.
func ResponseCookiePrefix(res *resty.Response, prefix string) (*http.Cookie, bool) {
	for _, c := range res.Cookies() {
		if strings.HasPrefix(c.Name, prefix) {
			return c, true
		}
	}
	return nil, false
}

// DisableRedirects makes the underlying http client return 3xx responses
// as-is instead of following them, without erroring the way resty's
// NoRedirectPolicy does.
func DisableRedirects(client *resty.Client) {
	client.GetClient().CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
}
