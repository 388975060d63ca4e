// Package story holds the types shared by the crawler, the extractor and the
// output sinks: listing metadata, fetched pages, output sections and the
// crawl error kinds.
package story

import (
	"sort"

	"github.com/PuerkitoBio/goquery"
)

// Title is one row of an author's listing page.
type Title struct {
	Name        string
	Description string
	URL         string
	Date        Date
}

// TitleLine is the two-line label used for a section: name, then description.
func (t Title) TitleLine() string {
	return t.Name + "\n" + t.Description
}

type AuthorIndex struct {
	Name   string
	Titles []Title
}

// Lookup maps detail URLs to titles. A URL listed twice keeps the last row;
// the duplicated URLs are returned so the caller can report them.
func (a *AuthorIndex) Lookup() (map[string]Title, []string) {
	out := make(map[string]Title, len(a.Titles))
	var dups []string

	for _, t := range a.Titles {
		if _, ok := out[t.URL]; ok {
			dups = append(dups, t.URL)
		}
		out[t.URL] = t
	}

	return out, dups
}

// SortedByDate returns a copy of the titles, oldest first. Rows published on
// the same day keep listing order.
func (a *AuthorIndex) SortedByDate() []Title {
	out := make([]Title, len(a.Titles))
	copy(out, a.Titles)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})

	return out
}

// Page is a fetched and parsed HTML page. URL is the address that was
// requested and identifies the page to the crawler; Base is where the server
// finally answered after redirects.
type Page struct {
	URL  string
	Base string
	Doc  *goquery.Document
	Size int64
}

// LinkBase is the URL relative links on the page resolve against.
func (p *Page) LinkBase() string {
	if p.Base != "" {
		return p.Base
	}
	return p.URL
}

// Section is one chapter handed to an output sink.
type Section struct {
	FileName string
	Title    string
	Body     string
}
