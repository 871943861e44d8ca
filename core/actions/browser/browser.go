// Package browser opens web pages for the actions that answer by showing
// something instead of saying it.
package browser

import (
	"context"
	"io"
	"net/url"

	"github.com/pkg/browser"
)

type Opener interface {
	OpenURL(ctx context.Context, url string) error
}

type OpenerFunc func(ctx context.Context, url string) error

func (f OpenerFunc) OpenURL(ctx context.Context, url string) error { return f(ctx, url) }

// System opens URLs in the user's default browser.
type System struct{}

// NewSystem returns a System opener. The opener's own output is discarded
// so it does not draw over the terminal UI.
func NewSystem() *System {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return &System{}
}

func (*System) OpenURL(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return browser.OpenURL(url)
}

const searchEndpoint = "https://www.google.com/search"

// SearchURL returns the web search URL for query.
func SearchURL(query string) string {
	return searchEndpoint + "?" + url.Values{"q": {query}}.Encode()
}
