package ui

import "sync/atomic"

// Stats counts what a crawl has fetched so far.
type Stats struct {
	Pages    atomic.Int64
	Bytes    atomic.Int64
	Chapters atomic.Int64
}
