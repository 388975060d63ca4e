// Package crawl walks a story's pages and its series, matches every chapter to
// the author's listing and feeds the assembled chapters to an output sink.
//
// The crawl is strictly sequential: the next URL is only known after the
// current page has been parsed.
package crawl

import (
	"context"

	"github.com/brogergvhs/storyd/internal/story"
)

// Fetcher retrieves and parses one page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*story.Page, error)
}

// Extractor reads the site structure out of a parsed page.
type Extractor interface {
	ChapterTitle(p *story.Page) (string, error)
	Body(p *story.Page) (string, error)
	NextPage(p *story.Page) (string, bool)
	SeriesLinks(p *story.Page) []string
	AuthorLink(p *story.Page) (string, error)
	AuthorIndex(p *story.Page) (*story.AuthorIndex, error)
}

// Sink receives finished chapters. Finalize is only called once every chapter
// has been added; a failed crawl never reaches it.
type Sink interface {
	SetAuthor(name string)
	AddSection(s story.Section) error
	Finalize() error
}

// Observer is told about traversal progress. Implementations must not block.
type Observer interface {
	PageStarted(url string)
	PageFetched(url string, size int64)
	ChapterDone(heading string, pages int)
}

type nopObserver struct{}

func (nopObserver) PageStarted(string)        {}
func (nopObserver) PageFetched(string, int64) {}
func (nopObserver) ChapterDone(string, int)   {}

// Logger is the subset of ui.Logger the crawler uses.
type Logger interface {
	Debugf(string, ...any)
	Warnf(string, ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Warnf(string, ...any)  {}

// Options configures a Crawler. Nil collaborators are replaced by no-ops.
type Options struct {
	Observer Observer
	Logger   Logger
	// Headings prefixes a single (non-series) chapter with an <h1> heading.
	// Series chapters always get one.
	Headings bool
}

// Crawler walks story pages through a Fetcher and reads them with an
// Extractor. It is not safe for concurrent use; Run resets its byte counter.
type Crawler struct {
	fetcher   Fetcher
	extractor Extractor
	obs       Observer
	log       Logger
	headings  bool

	fetched int64
}

// New returns a Crawler reading pages from f.
func New(f Fetcher, x Extractor, opts Options) *Crawler {
	c := &Crawler{
		fetcher:   f,
		extractor: x,
		obs:       opts.Observer,
		log:       opts.Logger,
		headings:  opts.Headings,
	}
	if c.obs == nil {
		c.obs = nopObserver{}
	}
	if c.log == nil {
		c.log = nopLogger{}
	}

	return c
}

func (c *Crawler) fetch(ctx context.Context, url string) (*story.Page, error) {
	c.obs.PageStarted(url)

	p, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	c.fetched += p.Size
	c.obs.PageFetched(url, p.Size)
	return p, nil
}
