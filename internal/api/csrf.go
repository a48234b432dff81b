package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"clientctl/pkg/logging"

	"golang.org/x/net/html"
)

const (
	csrfTokenMeta  = "_csrf"
	csrfHeaderMeta = "_csrf_header"
)

// AntiForgery is the header name and token pair sent on write requests.
type AntiForgery struct {
	Header string
	Token  string
}

// Valid reports whether both parts are known. Half a pair is never sent.
func (a AntiForgery) Valid() bool {
	return a.Header != "" && a.Token != ""
}

// ParseAntiForgery scans an HTML document for the _csrf and _csrf_header meta
// tags. Missing tags leave the corresponding field empty.
func ParseAntiForgery(r io.Reader) (AntiForgery, error) {
	var af AntiForgery
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return af, err
			}
			return af, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.Data != "meta" {
				continue
			}
			var name, content string
			for _, attr := range tok.Attr {
				switch attr.Key {
				case "name":
					name = attr.Val
				case "content":
					content = strings.TrimSpace(attr.Val)
				}
			}
			switch name {
			case csrfTokenMeta:
				af.Token = content
			case csrfHeaderMeta:
				af.Header = content
			}
			if af.Valid() {
				return af, nil
			}
		}
	}
}

// DiscoverAntiForgery loads pageURL (the endpoint page when empty) and
// installs the anti-forgery pair found in its meta tags. A page without the
// tags is not an error; the returned pair is then invalid and nothing is sent.
func (c *Client) DiscoverAntiForgery(ctx context.Context, pageURL string) (AntiForgery, error) {
	if pageURL == "" {
		pageURL = c.base.String()
	}
	target, err := c.Resolve(pageURL)
	if err != nil {
		return AntiForgery{}, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return AntiForgery{}, fmt.Errorf("building GET %s: %w", target, err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return AntiForgery{}, &TransportError{Method: http.MethodGet, URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return AntiForgery{}, &RequestError{Method: http.MethodGet, URL: target, StatusCode: resp.StatusCode}
	}

	af, err := ParseAntiForgery(resp.Body)
	if err != nil {
		return AntiForgery{}, fmt.Errorf("parsing %s: %w", target, err)
	}
	if !af.Valid() {
		logging.Debug(subsystem, "No anti-forgery meta tags found on %s", target)
		return af, nil
	}

	c.antiForgery = af
	logging.Debug(subsystem, "Discovered anti-forgery header %s", af.Header)
	return af, nil
}
