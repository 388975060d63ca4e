package story

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorIndex_Lookup(t *testing.T) {
	idx := &AuthorIndex{
		Name: "someone",
		Titles: []Title{
			{Name: "One", URL: "https://example.com/s/one"},
			{Name: "Two", URL: "https://example.com/s/two"},
			{Name: "Two again", URL: "https://example.com/s/two"},
		},
	}

	m, dups := idx.Lookup()

	assert.Len(t, m, 2)
	assert.Equal(t, "Two again", m["https://example.com/s/two"].Name)
	assert.Equal(t, []string{"https://example.com/s/two"}, dups)
}

func TestAuthorIndex_SortedByDate(t *testing.T) {
	idx := &AuthorIndex{
		Titles: []Title{
			{Name: "late", Date: Date{Year: 2019, Month: 1, Day: 1}},
			{Name: "early", Date: Date{Year: 1998, Month: 5, Day: 2}},
			{Name: "mid-a", Date: Date{Year: 2005, Month: 1, Day: 1}},
			{Name: "mid-b", Date: Date{Year: 2005, Month: 1, Day: 1}},
		},
	}

	var names []string
	for _, ti := range idx.SortedByDate() {
		names = append(names, ti.Name)
	}

	assert.Equal(t, []string{"early", "mid-a", "mid-b", "late"}, names)
	assert.Equal(t, "late", idx.Titles[0].Name, "original order untouched")
}

func TestTitle_TitleLine(t *testing.T) {
	ti := Title{Name: "Intro", Description: "A short start"}
	assert.Equal(t, "Intro\nA short start", ti.TitleLine())
}

func TestError_IsByKind(t *testing.T) {
	err := fmt.Errorf("crawl: %w", &Error{Kind: KindUnknownStory, URL: "https://example.com/s/x"})

	assert.True(t, errors.Is(err, ErrUnknownStory))
	assert.False(t, errors.Is(err, ErrFetch))
	assert.Equal(t, KindUnknownStory, KindOf(err))
	assert.Contains(t, err.Error(), "https://example.com/s/x")
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := &Error{Kind: KindFetch, URL: "https://example.com", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "fetch error at https://example.com: connection reset", err.Error())
}

func TestWithURL(t *testing.T) {
	err := WithURL(Extraction("", "title", "no title"), "https://example.com/p")

	var se *Error
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, "https://example.com/p", se.URL)
	assert.Equal(t, "title", se.Phase)

	plain := errors.New("x")
	assert.Equal(t, plain, WithURL(plain, "u"))
}
