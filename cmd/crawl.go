package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/brogergvhs/storyd/internal/config"
	"github.com/brogergvhs/storyd/internal/crawl"
	"github.com/brogergvhs/storyd/internal/history"
	"github.com/brogergvhs/storyd/internal/sink"
	"github.com/brogergvhs/storyd/internal/ui"
	"github.com/brogergvhs/storyd/internal/util"

	"github.com/spf13/cobra"
)

var (
	// traversal
	flagSeries   bool
	flagHeadings bool

	// output
	flagDest       string
	flagOutputDir  string
	flagEpub       bool
	flagNoProgress bool
	flagNoHistory  bool

	// transport
	flagUserAgent  string
	flagCloudflare bool
	flagTimeout    time.Duration
)

func init() {
	crawlCmd := &cobra.Command{
		Use:   "crawl <story-url>",
		Short: "Crawl a story (and optionally its series) into HTML or EPUB. Uses the defaults from the selected config, overwritten by CLI flags",
		Args:  cobra.ExactArgs(1),
		RunE:  runCrawl,
	}

	// traversal
	crawlCmd.Flags().BoolVar(&flagSeries, "series", false, "follow series links to the following chapters")
	crawlCmd.Flags().BoolVar(&flagHeadings, "headings", false, "prefix a single chapter with an <h1> heading")

	// output
	crawlCmd.Flags().StringVarP(&flagDest, "out", "o", "", "destination file (flat output goes to stdout when empty)")
	crawlCmd.Flags().StringVar(&flagOutputDir, "output-dir", "", "folder for EPUB files named after the story")
	crawlCmd.Flags().BoolVar(&flagEpub, "epub", false, "package the chapters as an EPUB")
	crawlCmd.Flags().BoolVar(&flagNoProgress, "no-progress", false, "hide the progress bar")
	crawlCmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "don't record this crawl in the history database")

	// transport
	crawlCmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
	crawlCmd.Flags().BoolVar(&flagCloudflare, "cloudflare", false, "use browser-like TLS and headers to pass Cloudflare checks")
	crawlCmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "per-request timeout (default 30s)")

	rootCmd.AddCommand(crawlCmd)
}

func runCrawl(cmd *cobra.Command, args []string) error {
	s, err := newSession(config.Options{
		Output:           flagOutputDir,
		Series:           flagSeries,
		Epub:             flagEpub,
		Headings:         flagHeadings,
		UserAgent:        flagUserAgent,
		Timeout:          flagTimeout,
		CloudflareBypass: flagCloudflare,
		NoProgress:       flagNoProgress,
		NoHistory:        flagNoHistory,
	})
	if err != nil {
		return err
	}
	cfg := s.cfg

	var (
		out    crawl.Sink
		epub   *sink.Epub
		format = "html"
	)
	if cfg.Epub {
		epub = sink.NewEpub(flagDest, cfg.Output)
		out = epub
		format = "epub"
	} else {
		out = sink.NewBuffer(flagDest, os.Stdout)
	}

	util.SetupInterruptHandler()

	var (
		obs  crawl.Observer
		prog *ui.CrawlProgress
	)
	if cfg.Progress {
		prog = ui.NewCrawlProgress()
		obs = prog
	}

	ctx := context.Background()
	start := time.Now()

	rep, err := s.crawler(obs).Run(ctx, crawl.Request{URL: args[0], Series: cfg.Series}, out)
	if err != nil {
		if prog != nil {
			prog.Abort()
		}
		return err
	}
	if prog != nil {
		prog.Close()
	}

	dest := flagDest
	switch {
	case epub != nil:
		dest = epub.Dest()
	case dest == "":
		dest = "stdout"
	}

	w := os.Stderr
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Crawl Summary:")
	fmt.Fprintf(w, "Author:   %s\n", rep.Author)
	fmt.Fprintf(w, "Chapters: %d (%s)\n", len(rep.Chapters), strings.Join(rep.Chapters, ", "))
	fmt.Fprintf(w, "Pages:    %d\n", rep.Pages)
	fmt.Fprintf(w, "Data:     %s\n", util.Human(rep.Bytes))
	fmt.Fprintf(w, "Output:   %s\n", dest)
	fmt.Fprintf(w, "Time:     %s\n", time.Since(start).Round(time.Second))

	if cfg.History {
		recordHistory(ctx, s, history.Entry{
			URL:      args[0],
			Author:   rep.Author,
			Title:    firstOr(rep.Chapters, ""),
			Chapters: len(rep.Chapters),
			Format:   format,
			Output:   dest,
		})
	}

	return nil
}

// recordHistory never fails the crawl; the output is already written.
func recordHistory(ctx context.Context, s *session, e history.Entry) {
	store, err := history.Open(s.cfg.HistoryDB)
	if err != nil {
		s.log.Warnf("History disabled: %v", err)
		return
	}
	defer store.Close()

	if _, err := store.Record(ctx, e); err != nil {
		s.log.Warnf("Could not record crawl: %v", err)
		return
	}

	s.log.Debugf("Recorded crawl in %s", s.cfg.HistoryDB)
}

func firstOr(list []string, def string) string {
	if len(list) == 0 {
		return def
	}
	return list[0]
}
