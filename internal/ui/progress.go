package ui

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/brogergvhs/storyd/internal/util"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// CrawlProgress renders a single open-ended bar for a crawl. The total is not
// known up front, so the bar counts pages and only completes on Close.
type CrawlProgress struct {
	p     *mpb.Progress
	bar   *mpb.Bar
	Stats *Stats

	current atomic.Value
	start   time.Time
	elapsed atomic.Int64
	final   atomic.Bool
}

func NewCrawlProgress() *CrawlProgress {
	return NewCrawlProgressTo(os.Stderr)
}

func NewCrawlProgressTo(w io.Writer) *CrawlProgress {
	p := mpb.New(
		mpb.WithWidth(24),
		mpb.WithOutput(w),
		mpb.WithRefreshRate(120*time.Millisecond),
	)

	cp := &CrawlProgress{p: p, Stats: &Stats{}, start: time.Now()}
	cp.current.Store("")
	cp.initBar()

	return cp
}

func (cp *CrawlProgress) initBar() {
	cp.bar = cp.p.New(
		0,
		mpb.SpinnerStyle(),

		mpb.PrependDecorators(
			decor.Name("crawl  "),
		),

		mpb.AppendDecorators(
			decor.CurrentNoUnit(" %d pages", decor.WCSyncWidth),
			decor.Any(func(_ decor.Statistics) string {
				return fmt.Sprintf(" | %d ch", cp.Stats.Chapters.Load())
			}),
			decor.Any(func(_ decor.Statistics) string {
				return " | " + util.Human(cp.Stats.Bytes.Load())
			}),
			decor.Any(func(_ decor.Statistics) string {
				if cp.final.Load() {
					return fmt.Sprintf(" | %ds", cp.elapsed.Load())
				}
				return fmt.Sprintf(" | %ds", int(time.Since(cp.start).Seconds()))
			}),
			decor.Any(func(_ decor.Statistics) string {
				if cp.final.Load() {
					return ""
				}
				return " | " + shorten(cp.current.Load().(string), 48)
			}),
		),
	)
}

func (cp *CrawlProgress) PageStarted(url string) {
	cp.current.Store(url)
}

func (cp *CrawlProgress) PageFetched(_ string, size int64) {
	if cp.final.Load() {
		return
	}

	cp.Stats.Pages.Add(1)
	cp.Stats.Bytes.Add(size)
	cp.bar.Increment()
}

func (cp *CrawlProgress) ChapterDone(_ string, _ int) {
	cp.Stats.Chapters.Add(1)
}

// Close completes the bar and waits for the final render.
func (cp *CrawlProgress) Close() {
	if !cp.finish() {
		return
	}
	cp.bar.SetTotal(-1, true)
	cp.p.Wait()
}

// Abort drops the bar without marking it complete.
func (cp *CrawlProgress) Abort() {
	if !cp.finish() {
		return
	}
	cp.bar.Abort(false)
	cp.p.Wait()
}

func (cp *CrawlProgress) finish() bool {
	if cp.final.Swap(true) {
		return false
	}

	cp.elapsed.Store(int64(time.Since(cp.start).Seconds()))
	return true
}

func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return "..." + string(r[len(r)-n+3:])
}
