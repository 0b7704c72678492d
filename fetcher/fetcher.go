// Package fetcher crawls news sites and commits the articles it finds
// to a repository, where they serve as raw corpus text for training.
package fetcher

import (
	"time"

	"github.com/qwwqe/pyime/repository"
)

type Fetcher interface {
	Fetch(options FetchOptions) error
	SetFetcherOptions(options *FetcherOptions)
	GetFetcherOptions() *FetcherOptions
}

// CacheDir is the parent directory for per-site response caches.
var CacheDir = "./cache/"

type FetchOptions struct {
	ArticleLimit int // maximum number of articles to save. Zero means no limit.
	BeforeTime   time.Time
	AfterTime    time.Time

	DeparturePoint string // starting url

	MaxDepth    int
	Async       bool
	Parallelism int
	UserAgent   string
}

type FetcherOptions struct {
	Repository repository.Repository
}
