package extract

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/storyd/internal/story"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chapterHTML = `<html><body>
<div class="b-story-header"><h1> The Long Road </h1>
  <span class="b-story-user-y"><a href="/stories/memberpage.php?uid=7">writer</a></span>
</div>
<div class="b-story-body-x"><div><p>First page.</p></div></div>
<a class="b-pager-next" href="?page=2">Next</a>
<div id="b-series">
  <a class="ser_link" href="https://example.com/s/part-one">Part 1</a>
  <a class="other" href="https://example.com/s/ignored">nope</a>
  <a class="ser_link" href="/s/part-two">Part 2</a>
</div>
</body></html>`

const listingHTML = `<html><body>
<a class="contactheader" href="#">writer</a>
<table>
<tr class="sl"><td><a href="https://example.com/s/part-one">Part 1</a></td><td> The start </td><td>x</td><td>10/03/17</td></tr>
<tr class="r-ott"><td><a href="/s/part-two">Part 2</a></td><td>The end</td><td>x</td><td>2018/01/09</td></tr>
</table>
</body></html>`

func page(t *testing.T, url, html string) *story.Page {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	return &story.Page{URL: url, Doc: doc}
}

func newExtractor(t *testing.T) *Extractor {
	t.Helper()

	x, err := New(DefaultSelectors())
	require.NoError(t, err)

	return x
}

func TestNew_InvalidSelector(t *testing.T) {
	sel := DefaultSelectors()
	sel.NextPage = "a[href"

	_, err := New(sel)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "next_page")
}

func TestSelectors_Merge(t *testing.T) {
	custom := Selectors{StoryBody: "article .text"}

	merged := custom.Merge(DefaultSelectors())

	assert.Equal(t, "article .text", merged.StoryBody)
	assert.Equal(t, ".b-pager-next", merged.NextPage)
	assert.Equal(t, "td:nth-child(4)", merged.RowDate)
}

func TestExtractor_ChapterPage(t *testing.T) {
	x := newExtractor(t)
	p := page(t, "https://example.com/s/the-long-road", chapterHTML)

	title, err := x.ChapterTitle(p)
	require.NoError(t, err)
	assert.Equal(t, "The Long Road", title)

	body, err := x.Body(p)
	require.NoError(t, err)
	assert.Equal(t, "<div><p>First page.</p></div>", body)

	next, ok := x.NextPage(p)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/s/the-long-road?page=2", next)

	assert.Equal(t, []string{
		"https://example.com/s/part-one",
		"https://example.com/s/part-two",
	}, x.SeriesLinks(p))

	author, err := x.AuthorLink(p)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/stories/memberpage.php?uid=7", author)
}

func TestExtractor_MissingElements(t *testing.T) {
	x := newExtractor(t)
	p := page(t, "https://example.com/s/empty", `<html><body><p>nothing</p></body></html>`)

	_, err := x.ChapterTitle(p)
	assert.True(t, errors.Is(err, story.ErrExtraction))

	_, err = x.Body(p)
	assert.True(t, errors.Is(err, story.ErrMissingContent))
	assert.Contains(t, err.Error(), "https://example.com/s/empty")

	_, ok := x.NextPage(p)
	assert.False(t, ok)
	assert.Empty(t, x.SeriesLinks(p))

	_, err = x.AuthorLink(p)
	assert.True(t, errors.Is(err, story.ErrExtraction))
}

func TestExtractor_AuthorIndex(t *testing.T) {
	x := newExtractor(t)
	p := page(t, "https://example.com/stories/memberpage.php?uid=7", listingHTML)

	idx, err := x.AuthorIndex(p)
	require.NoError(t, err)

	assert.Equal(t, "writer", idx.Name)
	require.Len(t, idx.Titles, 2)
	assert.Equal(t, story.Title{
		Name:        "Part 1",
		Description: "The start",
		URL:         "https://example.com/s/part-one",
		Date:        story.Date{Year: 2017, Month: 10, Day: 3},
	}, idx.Titles[0])
	assert.Equal(t, "https://example.com/s/part-two", idx.Titles[1].URL)
	assert.Equal(t, story.Date{Year: 2018, Month: 1, Day: 9}, idx.Titles[1].Date)
}

func TestExtractor_AuthorIndexNoName(t *testing.T) {
	x := newExtractor(t)
	p := page(t, "https://example.com/m", `<html><body><table></table></body></html>`)

	_, err := x.AuthorIndex(p)
	assert.True(t, errors.Is(err, story.ErrExtraction))
}

func TestExtractor_AuthorIndexIncompleteRow(t *testing.T) {
	x := newExtractor(t)
	html := `<html><body><a class="contactheader">w</a><table>
<tr class="sl"><td><a href="/s/a">A</a></td><td>d</td><td>x</td><td>01/02/03</td></tr>
<tr class="sl"><td><a href="/s/b">B</a></td><td>d</td></tr>
</table></body></html>`

	idx, err := x.AuthorIndex(page(t, "https://example.com/m", html))
	require.Error(t, err)
	assert.Nil(t, idx)
	assert.True(t, errors.Is(err, story.ErrExtraction))
	assert.Contains(t, err.Error(), "listing row 2")
}

func TestExtractor_AuthorIndexBadDate(t *testing.T) {
	x := newExtractor(t)
	html := `<html><body><a class="contactheader">w</a><table>
<tr class="sl"><td><a href="/s/a">A</a></td><td>d</td><td>x</td><td>someday</td></tr>
</table></body></html>`

	_, err := x.AuthorIndex(page(t, "https://example.com/m", html))
	require.Error(t, err)
	assert.True(t, errors.Is(err, story.ErrDateParse))
	assert.Contains(t, err.Error(), "https://example.com/m")
}

func TestResolveURL(t *testing.T) {
	assert.Equal(t, "https://example.com/a/c", ResolveURL("https://example.com/a/b", "c"))
	assert.Equal(t, "https://other.org/x", ResolveURL("https://example.com/a", "https://other.org/x"))
	assert.Equal(t, "https://example.com/a", ResolveURL("https://example.com/a", "  "))
}

func TestExtractor_LinksResolveAgainstBase(t *testing.T) {
	x := newExtractor(t)
	p := page(t, "https://example.com/old", chapterHTML)
	p.Base = "https://example.com/s/new/story"

	next, ok := x.NextPage(p)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/s/new/story?page=2", next)

	html := strings.Replace(chapterHTML, `href="/s/part-two"`, `href="part-two"`, 1)
	p = page(t, "https://example.com/old", html)
	p.Base = "https://example.com/s/new/story"
	assert.Equal(t, []string{"https://example.com/s/part-one", "https://example.com/s/new/part-two"}, x.SeriesLinks(p))

	listing := page(t, "https://example.com/m", strings.Replace(listingHTML, `href="/s/part-two"`, `href="part-two"`, 1))
	listing.Base = "https://example.com/stories/memberpage.php"
	idx, err := x.AuthorIndex(listing)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/stories/part-two", idx.Titles[1].URL)
}
