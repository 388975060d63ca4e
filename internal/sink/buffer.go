package sink

import (
	"io"
	"strings"

	"github.com/brogergvhs/storyd/internal/story"
	"github.com/brogergvhs/storyd/internal/util"
)

// Buffer concatenates section bodies into one HTML blob. Nothing is written
// until Finalize.
type Buffer struct {
	dest   string
	stdout io.Writer
	buf    strings.Builder
}

// NewBuffer writes to dest on Finalize, or to stdout when dest is empty.
func NewBuffer(dest string, stdout io.Writer) *Buffer {
	return &Buffer{dest: dest, stdout: stdout}
}

func (b *Buffer) SetAuthor(string) {}

func (b *Buffer) AddSection(s story.Section) error {
	b.buf.WriteString(s.Body)
	return nil
}

func (b *Buffer) Finalize() error {
	data := []byte(b.buf.String())

	if b.dest == "" {
		if _, err := b.stdout.Write(data); err != nil {
			return sinkErr("stdout", err)
		}
		return nil
	}

	if err := util.WriteFileAtomic(b.dest, data); err != nil {
		return sinkErr(b.dest, err)
	}

	return nil
}

func sinkErr(dest string, err error) error {
	return &story.Error{Kind: story.KindSink, URL: dest, Phase: "write", Err: err}
}
