package cmd

import (
	"fmt"

	"github.com/brogergvhs/storyd/internal/config"
	"github.com/brogergvhs/storyd/internal/crawl"
	"github.com/brogergvhs/storyd/internal/extract"
	"github.com/brogergvhs/storyd/internal/fetch"
	"github.com/brogergvhs/storyd/internal/ui"
	"github.com/brogergvhs/storyd/internal/util"
)

// session holds everything a command needs to talk to the site.
type session struct {
	cfg *config.Config
	log *ui.Logger
	x   *extract.Extractor
	f   *fetch.Client
}

func newSession(opts config.Options) (*session, error) {
	cfg, usedPath, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	logSvc := ui.NewLogger(cfg.Debug)
	logSvc.Debugf("Config file: %s", usedPath)

	x, err := extract.New(cfg.Selectors)
	if err != nil {
		return nil, fmt.Errorf("selectors in %s: %w", usedPath, err)
	}

	client, err := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:          cfg.Timeout,
		UserAgent:        util.PickUserAgent(cfg.UserAgent),
		CloudflareBypass: cfg.CloudflareBypass,
		DebugLogger:      logSvc,
	})
	if err != nil {
		return nil, err
	}

	return &session{
		cfg: cfg,
		log: logSvc,
		x:   x,
		f:   fetch.New(client, logSvc),
	}, nil
}

func (s *session) crawler(obs crawl.Observer) *crawl.Crawler {
	return crawl.New(s.f, s.x, crawl.Options{
		Observer: obs,
		Logger:   s.log,
		Headings: s.cfg.Headings,
	})
}
