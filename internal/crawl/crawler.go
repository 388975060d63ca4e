package crawl

import (
	"context"
	"fmt"

	"github.com/brogergvhs/storyd/internal/extract"
	"github.com/brogergvhs/storyd/internal/story"
)

// Request names the story to crawl. With Series set, the chapters linked from
// its series block are followed as well.
type Request struct {
	URL    string
	Series bool
}

// Report summarises a finished crawl.
type Report struct {
	Author   string
	Chapters []string
	Pages    int
	Bytes    int64
}

// Run crawls req and hands every chapter to sink. On any error the sink is
// left unfinalized, so no output is produced.
func (c *Crawler) Run(ctx context.Context, req Request, sink Sink) (*Report, error) {
	start := extract.ResolveURL("", req.URL)
	c.fetched = 0

	idx, first, err := c.IndexFor(ctx, start)
	if err != nil {
		return nil, err
	}

	sink.SetAuthor(idx.Name)

	lookup, dups := idx.Lookup()
	for _, d := range dups {
		c.log.Warnf("Author listing has %s more than once; using the last entry", d)
	}

	rep := &Report{Author: idx.Name}

	if req.Series {
		_, err := c.walkSeries(ctx, start, first, func(ch Chapter) error {
			return c.handOff(sink, lookup, rep, ch)
		})
		if err != nil {
			return nil, err
		}
	} else {
		res, err := c.assemble(ctx, start, first)
		if err != nil {
			return nil, err
		}

		ch := Chapter{URL: res.URL, Heading: headingFor(res.Title, res.URL), Body: res.Body, Pages: res.Pages}
		if c.headings {
			ch = withHeading(res)
		}
		c.obs.ChapterDone(ch.Heading, ch.Pages)

		if err := c.handOff(sink, lookup, rep, ch); err != nil {
			return nil, err
		}
	}

	if err := sink.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize output: %w", err)
	}

	rep.Bytes = c.fetched
	return rep, nil
}

func (c *Crawler) handOff(sink Sink, lookup map[string]story.Title, rep *Report, ch Chapter) error {
	t, ok := lookup[ch.URL]
	if !ok {
		return &story.Error{
			Kind:  story.KindUnknownStory,
			URL:   ch.URL,
			Phase: "lookup",
			Err:   fmt.Errorf("chapter is not in %s's listing", rep.Author),
		}
	}

	err := sink.AddSection(story.Section{
		FileName: ch.Heading,
		Title:    t.TitleLine(),
		Body:     ch.Body,
	})
	if err != nil {
		return fmt.Errorf("add %q: %w", ch.Heading, err)
	}

	rep.Chapters = append(rep.Chapters, t.Name)
	rep.Pages += ch.Pages
	return nil
}
