package crawl

import (
	"context"
	"html"
	"net/url"
	"path"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/brogergvhs/storyd/internal/story"
)

const unknownStory = "Unknown story"

// Chapter is a finished series entry: heading resolved and prepended.
type Chapter struct {
	URL     string
	Heading string
	Body    string
	Pages   int
}

// WalkSeries assembles the chapter at start and keeps following the first
// series link not yet visited. Every page of an assembled chapter counts as
// visited, so a link to page 2 of an earlier chapter is not followed. emit is
// called once per chapter, in order; an emit error stops the walk. The visited
// set is returned for inspection.
func (c *Crawler) WalkSeries(ctx context.Context, start string, emit func(Chapter) error) (mapset.Set[string], error) {
	return c.walkSeries(ctx, start, nil, emit)
}

func (c *Crawler) walkSeries(ctx context.Context, start string, first *story.Page, emit func(Chapter) error) (mapset.Set[string], error) {
	visited := mapset.NewThreadUnsafeSet[string]()
	pending := start

	for pending != "" {
		visited.Add(pending)

		res, err := c.assemble(ctx, pending, first)
		if err != nil {
			return visited, err
		}
		first = nil
		visited.Append(res.PageURLs...)

		ch := withHeading(res)
		c.obs.ChapterDone(ch.Heading, ch.Pages)
		if err := emit(ch); err != nil {
			return visited, err
		}

		pending = nextUnvisited(c.extractor.SeriesLinks(res.LastPage), visited)
		if pending != "" {
			c.log.Debugf("Series continues at %s", pending)
		}
	}

	return visited, nil
}

// nextUnvisited picks the first link, in page order, that is not in visited.
func nextUnvisited(links []string, visited mapset.Set[string]) string {
	for _, l := range links {
		if !visited.Contains(l) {
			return l
		}
	}

	return ""
}

func withHeading(res *ChapterResult) Chapter {
	heading := headingFor(res.Title, res.URL)

	return Chapter{
		URL:     res.URL,
		Heading: heading,
		Body:    "<h1>" + html.EscapeString(heading) + "</h1>" + res.Body,
		Pages:   res.Pages,
	}
}

// headingFor falls back to the URL's last path segment, then to a placeholder.
func headingFor(title, rawURL string) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}

	if u, err := url.Parse(rawURL); err == nil {
		seg := path.Base(strings.TrimRight(u.Path, "/"))
		if seg != "" && seg != "." && seg != "/" {
			return seg
		}
	}

	return unknownStory
}
