// Package fetch retrieves story pages over plain HTTP GET and parses them into
// goquery documents. Failures are reported as story.KindFetch errors carrying
// the failing URL; nothing is retried.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/storyd/internal/story"
)

type Client struct {
	http *http.Client
	log  interface{ Debugf(string, ...any) }
}

func New(c *http.Client, log interface{ Debugf(string, ...any) }) *Client {
	return &Client{http: c, log: log}
}

func (c *Client) Fetch(ctx context.Context, target string) (*story.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fetchErr(target, fmt.Errorf("build request: %w", err))
	}

	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fetchErr(target, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && c.log != nil {
			c.log.Debugf("Warning: failed to close response body for %s: %v", target, cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fetchErr(target, fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	var buf bytes.Buffer
	size, err := buf.ReadFrom(resp.Body)
	if err != nil {
		return nil, fetchErr(target, fmt.Errorf("read body: %w", err))
	}

	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		return nil, fetchErr(target, fmt.Errorf("parse HTML: %w", err))
	}

	base := target
	if resp.Request != nil && resp.Request.URL != nil {
		base = resp.Request.URL.String()
	}

	if c.log != nil {
		if base != target {
			c.log.Debugf("Fetched %s via %s (%d bytes)", target, base, size)
		} else {
			c.log.Debugf("Fetched %s (%d bytes)", target, size)
		}
	}

	return &story.Page{URL: target, Base: base, Doc: doc, Size: size}, nil
}

func fetchErr(url string, err error) error {
	return &story.Error{Kind: story.KindFetch, URL: url, Err: err}
}
