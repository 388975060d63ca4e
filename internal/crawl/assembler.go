package crawl

import (
	"context"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/brogergvhs/storyd/internal/story"
)

// ChapterResult is one chapter with all of its pages joined.
type ChapterResult struct {
	URL   string
	Title string
	Body  string
	// LastPage is kept so the series walk can read its navigation block.
	LastPage *story.Page
	Pages    int
	// PageURLs lists every page read, first page first.
	PageURLs []string
}

// AssembleChapter follows "next page" links from url until a page has none.
func (c *Crawler) AssembleChapter(ctx context.Context, url string) (*ChapterResult, error) {
	return c.assemble(ctx, url, nil)
}

// assemble is AssembleChapter with an optional already-fetched first page.
func (c *Crawler) assemble(ctx context.Context, url string, first *story.Page) (*ChapterResult, error) {
	res := &ChapterResult{URL: url}
	seen := mapset.NewThreadUnsafeSet[string]()

	var body strings.Builder
	cursor := url

	for {
		seen.Add(cursor)

		var page *story.Page
		if res.Pages == 0 && first != nil && first.URL == cursor {
			page = first
		} else {
			p, err := c.fetch(ctx, cursor)
			if err != nil {
				return nil, err
			}
			page = p
		}

		if res.Pages == 0 {
			title, err := c.extractor.ChapterTitle(page)
			if err != nil {
				return nil, err
			}
			res.Title = title
		}

		fragment, err := c.extractor.Body(page)
		if err != nil {
			return nil, err
		}
		body.WriteString(fragment)

		res.Pages++
		res.LastPage = page
		res.PageURLs = append(res.PageURLs, cursor)

		next, ok := c.extractor.NextPage(page)
		if !ok {
			break
		}
		if seen.Contains(next) {
			return nil, story.Extraction(page.URL, "pagination",
				"next page %s was already read in this chapter", next)
		}

		cursor = next
	}

	res.Body = body.String()
	c.log.Debugf("Assembled %q from %d page(s)", res.Title, res.Pages)

	return res, nil
}
