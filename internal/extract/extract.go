// Package extract pulls story fragments, pagination links and author listings
// out of parsed pages. Selectors are compiled once in New; an Extractor is
// immutable afterwards and safe to share.
package extract

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/brogergvhs/storyd/internal/story"
)

// Selectors are the CSS selectors describing the target site's markup.
type Selectors struct {
	StoryBody      string `yaml:"story_body"`
	NextPage       string `yaml:"next_page"`
	ChapterTitle   string `yaml:"chapter_title"`
	SeriesLink     string `yaml:"series_link"`
	AuthorLink     string `yaml:"author_link"`
	AuthorName     string `yaml:"author_name"`
	ListingRow     string `yaml:"listing_row"`
	RowTitle       string `yaml:"row_title"`
	RowDescription string `yaml:"row_description"`
	RowDate        string `yaml:"row_date"`
}

func DefaultSelectors() Selectors {
	return Selectors{
		StoryBody:      ".b-story-body-x",
		NextPage:       ".b-pager-next",
		ChapterTitle:   ".b-story-header h1",
		SeriesLink:     "#b-series a.ser_link",
		AuthorLink:     ".b-story-user-y > a",
		AuthorName:     "a.contactheader",
		ListingRow:     ".sl, .r-ott",
		RowTitle:       "td:nth-child(1) a",
		RowDescription: "td:nth-child(2)",
		RowDate:        "td:nth-child(4)",
	}
}

// Merge returns s with every empty field taken from def.
func (s Selectors) Merge(def Selectors) Selectors {
	pick := func(v, d string) string {
		if strings.TrimSpace(v) == "" {
			return d
		}
		return v
	}

	return Selectors{
		StoryBody:      pick(s.StoryBody, def.StoryBody),
		NextPage:       pick(s.NextPage, def.NextPage),
		ChapterTitle:   pick(s.ChapterTitle, def.ChapterTitle),
		SeriesLink:     pick(s.SeriesLink, def.SeriesLink),
		AuthorLink:     pick(s.AuthorLink, def.AuthorLink),
		AuthorName:     pick(s.AuthorName, def.AuthorName),
		ListingRow:     pick(s.ListingRow, def.ListingRow),
		RowTitle:       pick(s.RowTitle, def.RowTitle),
		RowDescription: pick(s.RowDescription, def.RowDescription),
		RowDate:        pick(s.RowDate, def.RowDate),
	}
}

type Extractor struct {
	storyBody      cascadia.Selector
	nextPage       cascadia.Selector
	chapterTitle   cascadia.Selector
	seriesLink     cascadia.Selector
	authorLink     cascadia.Selector
	authorName     cascadia.Selector
	listingRow     cascadia.Selector
	rowTitle       cascadia.Selector
	rowDescription cascadia.Selector
	rowDate        cascadia.Selector
}

func New(sel Selectors) (*Extractor, error) {
	x := &Extractor{}

	targets := []struct {
		name string
		src  string
		dst  *cascadia.Selector
	}{
		{"story_body", sel.StoryBody, &x.storyBody},
		{"next_page", sel.NextPage, &x.nextPage},
		{"chapter_title", sel.ChapterTitle, &x.chapterTitle},
		{"series_link", sel.SeriesLink, &x.seriesLink},
		{"author_link", sel.AuthorLink, &x.authorLink},
		{"author_name", sel.AuthorName, &x.authorName},
		{"listing_row", sel.ListingRow, &x.listingRow},
		{"row_title", sel.RowTitle, &x.rowTitle},
		{"row_description", sel.RowDescription, &x.rowDescription},
		{"row_date", sel.RowDate, &x.rowDate},
	}

	for _, t := range targets {
		compiled, err := cascadia.Compile(t.src)
		if err != nil {
			return nil, fmt.Errorf("selector %s %q: %w", t.name, t.src, err)
		}
		*t.dst = compiled
	}

	return x, nil
}

// ChapterTitle returns the heading text of a chapter's first page.
func (x *Extractor) ChapterTitle(p *story.Page) (string, error) {
	sel := p.Doc.FindMatcher(x.chapterTitle).First()
	if sel.Length() == 0 {
		return "", story.Extraction(p.URL, "title", "unable to find title")
	}

	return strings.TrimSpace(sel.Text()), nil
}

// Body returns the inner HTML of the page's story block.
func (x *Extractor) Body(p *story.Page) (string, error) {
	sel := p.Doc.FindMatcher(x.storyBody).First()
	if sel.Length() == 0 {
		return "", &story.Error{
			Kind:  story.KindMissingContent,
			URL:   p.URL,
			Phase: "body",
			Err:   fmt.Errorf("page had no story block"),
		}
	}

	inner, err := sel.Html()
	if err != nil {
		return "", story.Extraction(p.URL, "body", "render story block: %v", err)
	}

	return inner, nil
}

// NextPage returns the absolute URL of the in-chapter "next page" link.
func (x *Extractor) NextPage(p *story.Page) (string, bool) {
	href, ok := p.Doc.FindMatcher(x.nextPage).First().Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return "", false
	}

	return ResolveURL(p.LinkBase(), href), true
}

// SeriesLinks returns the series navigation links in document order.
func (x *Extractor) SeriesLinks(p *story.Page) []string {
	var out []string
	p.Doc.FindMatcher(x.seriesLink).Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		out = append(out, ResolveURL(p.LinkBase(), href))
	})

	return out
}

// AuthorLink returns the absolute URL of the author's listing page.
func (x *Extractor) AuthorLink(p *story.Page) (string, error) {
	a := p.Doc.FindMatcher(x.authorLink).First()
	if a.Length() == 0 {
		return "", story.Extraction(p.URL, "author link", "no author link")
	}

	href, ok := a.Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return "", story.Extraction(p.URL, "author link", "author link has no href")
	}

	return ResolveURL(p.LinkBase(), href), nil
}

// AuthorIndex reads the author's name and every listing row. A row missing any
// field fails the whole index.
func (x *Extractor) AuthorIndex(p *story.Page) (*story.AuthorIndex, error) {
	nameSel := p.Doc.FindMatcher(x.authorName).First()
	if nameSel.Length() == 0 {
		return nil, story.Extraction(p.URL, "author name", "no author on page")
	}

	idx := &story.AuthorIndex{Name: strings.TrimSpace(nameSel.Text())}

	var rowErr error
	p.Doc.FindMatcher(x.listingRow).EachWithBreak(func(i int, row *goquery.Selection) bool {
		t, err := x.parseRow(p, row)
		if err != nil {
			rowErr = fmt.Errorf("listing row %d: %w", i+1, err)
			return false
		}

		idx.Titles = append(idx.Titles, t)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	return idx, nil
}

func (x *Extractor) parseRow(p *story.Page, row *goquery.Selection) (story.Title, error) {
	pageURL := p.URL

	link := row.FindMatcher(x.rowTitle).First()
	if link.Length() == 0 {
		return story.Title{}, story.Extraction(pageURL, "listing", "row has no title link")
	}

	href, ok := link.Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return story.Title{}, story.Extraction(pageURL, "listing", "title link has no href")
	}

	desc := row.FindMatcher(x.rowDescription).First()
	if desc.Length() == 0 {
		return story.Title{}, story.Extraction(pageURL, "listing", "row has no description")
	}

	dateSel := row.FindMatcher(x.rowDate).First()
	if dateSel.Length() == 0 {
		return story.Title{}, story.Extraction(pageURL, "listing", "row has no date")
	}

	date, err := story.ParseDate(strings.TrimSpace(dateSel.Text()))
	if err != nil {
		return story.Title{}, story.WithURL(err, pageURL)
	}

	return story.Title{
		Name:        strings.TrimSpace(link.Text()),
		Description: strings.TrimSpace(desc.Text()),
		URL:         ResolveURL(p.LinkBase(), href),
		Date:        date,
	}, nil
}

// ResolveURL makes href absolute against baseURL. Absolute hrefs come back in
// their canonical url.URL form so they compare equal to listing keys.
func ResolveURL(baseURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return baseURL
	}

	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if u.IsAbs() {
		return u.String()
	}

	b, err := url.Parse(baseURL)
	if err != nil {
		return href
	}

	return b.ResolveReference(u).String()
}
