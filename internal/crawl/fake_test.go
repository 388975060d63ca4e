package crawl

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/brogergvhs/storyd/internal/extract"
	"github.com/brogergvhs/storyd/internal/story"
)

const (
	siteURL    = "https://example.com"
	listingURL = siteURL + "/stories/memberpage.php?uid=7"
)

// fakeSite serves canned HTML and counts fetches per URL.
type fakeSite struct {
	pages map[string]string
	calls map[string]int
	order []string
}

func newFakeSite() *fakeSite {
	return &fakeSite{pages: map[string]string{}, calls: map[string]int{}}
}

func (f *fakeSite) Fetch(_ context.Context, url string) (*story.Page, error) {
	f.calls[url]++
	f.order = append(f.order, url)

	html, ok := f.pages[url]
	if !ok {
		return nil, &story.Error{Kind: story.KindFetch, URL: url, Err: fmt.Errorf("HTTP 404")}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	return &story.Page{URL: url, Doc: doc, Size: int64(len(html))}, nil
}

type pageFixture struct {
	title  string
	body   string
	next   string
	series []string
}

func (p pageFixture) html() string {
	var b strings.Builder
	b.WriteString("<html><body>")
	if p.title != "" {
		fmt.Fprintf(&b, `<div class="b-story-header"><h1>%s</h1></div>`, p.title)
	}
	fmt.Fprintf(&b, `<span class="b-story-user-y"><a href="%s">writer</a></span>`, listingURL)
	if p.body != "" {
		fmt.Fprintf(&b, `<div class="b-story-body-x">%s</div>`, p.body)
	}
	if p.next != "" {
		fmt.Fprintf(&b, `<a class="b-pager-next" href="%s">Next</a>`, p.next)
	}
	if len(p.series) > 0 {
		b.WriteString(`<div id="b-series">`)
		for _, s := range p.series {
			fmt.Fprintf(&b, `<a class="ser_link" href="%s">x</a>`, s)
		}
		b.WriteString(`</div>`)
	}
	b.WriteString("</body></html>")

	return b.String()
}

func (f *fakeSite) add(url string, p pageFixture) {
	f.pages[url] = p.html()
}

type listingRow struct {
	name, desc, url, date string
}

func (f *fakeSite) listing(author string, rows ...listingRow) {
	var b strings.Builder
	fmt.Fprintf(&b, `<html><body><a class="contactheader">%s</a><table>`, author)
	for _, r := range rows {
		fmt.Fprintf(&b, `<tr class="sl"><td><a href="%s">%s</a></td><td>%s</td><td>r</td><td>%s</td></tr>`,
			r.url, r.name, r.desc, r.date)
	}
	b.WriteString("</table></body></html>")
	f.pages[listingURL] = b.String()
}

type recordingObserver struct {
	started  []string
	fetched  []string
	chapters []string
}

func (r *recordingObserver) PageStarted(url string)          { r.started = append(r.started, url) }
func (r *recordingObserver) PageFetched(url string, _ int64) { r.fetched = append(r.fetched, url) }
func (r *recordingObserver) ChapterDone(h string, _ int)     { r.chapters = append(r.chapters, h) }

type memorySink struct {
	author    string
	sections  []story.Section
	finalized bool
}

func (m *memorySink) SetAuthor(name string) { m.author = name }

func (m *memorySink) AddSection(s story.Section) error {
	m.sections = append(m.sections, s)
	return nil
}

func (m *memorySink) Finalize() error {
	m.finalized = true
	return nil
}

func newCrawler(t *testing.T, site *fakeSite, opts Options) *Crawler {
	t.Helper()

	x, err := extract.New(extract.DefaultSelectors())
	require.NoError(t, err)

	return New(site, x, opts)
}
