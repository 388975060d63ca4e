package ui

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, false)

	l.Debugf("hidden %d", 1)
	l.Infof("shown %d", 2)
	l.Warnf("careful")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 2")
	assert.Contains(t, out, "careful")
	assert.Contains(t, out, "storyd")
}

func TestLogger_Debug(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, true)

	l.Debugf("GET %s", "https://example.com/s/a")
	assert.Contains(t, buf.String(), "GET https://example.com/s/a")
}

func TestCrawlProgress_Counts(t *testing.T) {
	cp := NewCrawlProgressTo(io.Discard)

	cp.PageStarted("https://example.com/s/a")
	cp.PageFetched("https://example.com/s/a", 100)
	cp.PageStarted("https://example.com/s/a?page=2")
	cp.PageFetched("https://example.com/s/a?page=2", 50)
	cp.ChapterDone("A", 2)
	cp.Close()

	assert.Equal(t, int64(2), cp.Stats.Pages.Load())
	assert.Equal(t, int64(150), cp.Stats.Bytes.Load())
	assert.Equal(t, int64(1), cp.Stats.Chapters.Load())

	cp.PageFetched("late", 10)
	assert.Equal(t, int64(2), cp.Stats.Pages.Load(), "no updates after close")
}

func TestCrawlProgress_Abort(t *testing.T) {
	cp := NewCrawlProgressTo(io.Discard)
	cp.PageFetched("x", 1)
	cp.Abort()
	cp.Close()

	assert.Equal(t, int64(1), cp.Stats.Pages.Load())
}

func TestShorten(t *testing.T) {
	assert.Equal(t, "short", shorten("short", 10))
	assert.Equal(t, "...6789", shorten("0123456789", 7))
}
