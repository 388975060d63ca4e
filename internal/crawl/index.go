package crawl

import (
	"context"
	"fmt"

	"github.com/brogergvhs/storyd/internal/story"
)

// BuildIndex fetches an author's listing page and reads every published title.
func (c *Crawler) BuildIndex(ctx context.Context, listingURL string) (*story.AuthorIndex, error) {
	p, err := c.fetch(ctx, listingURL)
	if err != nil {
		return nil, fmt.Errorf("author listing: %w", err)
	}

	idx, err := c.extractor.AuthorIndex(p)
	if err != nil {
		return nil, fmt.Errorf("author listing: %w", err)
	}

	c.log.Debugf("Author %q lists %d titles", idx.Name, len(idx.Titles))
	return idx, nil
}

// IndexFor resolves the author listing linked from a story page.
func (c *Crawler) IndexFor(ctx context.Context, storyURL string) (*story.AuthorIndex, *story.Page, error) {
	first, err := c.fetch(ctx, storyURL)
	if err != nil {
		return nil, nil, err
	}

	link, err := c.extractor.AuthorLink(first)
	if err != nil {
		return nil, nil, err
	}

	idx, err := c.BuildIndex(ctx, link)
	if err != nil {
		return nil, nil, err
	}

	return idx, first, nil
}
