package sink

import (
	"fmt"
	"html"
	"path/filepath"
	"strings"

	"github.com/bmaupin/go-epub"

	"github.com/brogergvhs/storyd/internal/story"
	"github.com/brogergvhs/storyd/internal/util"
)

const contentsFile = "contents" + SectionExt

// Epub collects sections and packages them into an EPUB container on
// Finalize: author metadata, an inline contents page, then one section per
// chapter in the order added.
type Epub struct {
	dest      string
	outputDir string
	author    string
	sections  []story.Section
	names     *nameSet
}

// NewEpub writes to dest. With an empty dest the file is named after the book
// title inside outputDir.
func NewEpub(dest, outputDir string) *Epub {
	names := newNameSet()
	names.used[strings.TrimSuffix(contentsFile, SectionExt)] = true

	return &Epub{dest: dest, outputDir: outputDir, names: names}
}

func (e *Epub) SetAuthor(name string) { e.author = name }

func (e *Epub) AddSection(s story.Section) error {
	s.FileName = e.names.Next(s.FileName)
	e.sections = append(e.sections, s)
	return nil
}

// Title is the first line of the first section's title, which is the story
// name from the author listing.
func (e *Epub) Title() string {
	if len(e.sections) == 0 {
		return "Untitled"
	}

	name, _, _ := strings.Cut(e.sections[0].Title, "\n")
	if strings.TrimSpace(name) == "" {
		return "Untitled"
	}

	return name
}

// Dest is the path Finalize writes to.
func (e *Epub) Dest() string {
	if e.dest != "" {
		return e.dest
	}

	stem := Sanitize(e.Title())
	if stem == "" {
		stem = "story"
	}

	return filepath.Join(e.outputDir, stem+".epub")
}

func (e *Epub) Finalize() error {
	if len(e.sections) == 0 {
		return sinkErr(e.Dest(), fmt.Errorf("no chapters to package"))
	}

	book := epub.NewEpub(e.Title())
	book.SetAuthor(e.author)

	if _, err := book.AddSection(e.contents(), "Contents", contentsFile, ""); err != nil {
		return sinkErr(e.Dest(), fmt.Errorf("contents: %w", err))
	}

	for _, s := range e.sections {
		if _, err := book.AddSection(s.Body, s.Title, s.FileName, ""); err != nil {
			return sinkErr(e.Dest(), fmt.Errorf("section %s: %w", s.FileName, err))
		}
	}

	dest := e.Dest()
	if err := util.WriteAtomic(dest, book.Write); err != nil {
		return sinkErr(dest, err)
	}

	return nil
}

func (e *Epub) contents() string {
	var b strings.Builder
	b.WriteString("<h1>Contents</h1>\n<ol>\n")
	for _, s := range e.sections {
		fmt.Fprintf(&b, "<li><a href=\"%s\">%s</a></li>\n",
			s.FileName, html.EscapeString(strings.ReplaceAll(s.Title, "\n", ": ")))
	}
	b.WriteString("</ol>\n")

	return b.String()
}
