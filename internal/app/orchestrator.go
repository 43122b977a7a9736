package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"mcmodget/internal/config"
	"mcmodget/internal/fetcher"
	"mcmodget/internal/rank"
	"mcmodget/internal/scraper"
)

// Not-found conditions. A download batch reports them and moves on to the
// next mod; everything else aborts the run.
var (
	ErrNoResults      = errors.New("no search results")
	ErrNoMatchingFile = errors.New("no file matching the requested version")
)

// PageFetcher is the slice of the HTTP fetcher the orchestrator needs.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*fetcher.FetchResponse, error)
}

// FileResolver resolves a mod detail page and a version string to a
// downloadable file row, or reports not-found.
type FileResolver interface {
	ResolveFile(ctx context.Context, detailURL, version string) (scraper.FileRow, bool, error)
}

// FileDownloader writes a resolved file to dir and returns the path.
type FileDownloader interface {
	Download(ctx context.Context, rawURL, filename, dir string) (string, error)
}

type Orchestrator struct {
	cfg        *config.Config
	logger     *slog.Logger
	fetcher    PageFetcher
	scraper    *scraper.Scraper
	resolver   FileResolver
	downloader FileDownloader
}

func NewOrchestrator(
	cfg *config.Config,
	logger *slog.Logger,
	f PageFetcher,
	s *scraper.Scraper,
	r FileResolver,
	d FileDownloader,
) *Orchestrator {
	return &Orchestrator{
		cfg:        cfg,
		logger:     logger,
		fetcher:    f,
		scraper:    s,
		resolver:   r,
		downloader: d,
	}
}

// Search accumulates listings across result pages until the site stops
// advertising a next page or the configured ceiling is hit. Records come
// back in page order, each page's rows in row order.
func (o *Orchestrator) Search(ctx context.Context, query string) ([]scraper.Listing, error) {
	var all []scraper.Listing

	maxPages := o.cfg.Pagination.MaxPages
	for pageNum := 1; pageNum <= maxPages; pageNum++ {
		pageURL := o.scraper.SearchURL(o.cfg.Site.SearchPath, query, pageNum)

		o.logger.Debug("processing search page",
			"query", query,
			"page", pageNum,
			"url", pageURL,
		)

		resp, err := o.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("fetch failed at page %d: %w", pageNum, err)
		}

		listings, err := o.scraper.ParseSearchResults(string(resp.Body))
		if err != nil {
			return nil, fmt.Errorf("extraction failed at page %d: %w", pageNum, err)
		}
		all = append(all, listings...)

		more, err := o.scraper.HasNextPage(string(resp.Body))
		if err != nil {
			return nil, fmt.Errorf("pagination probe failed at page %d: %w", pageNum, err)
		}
		if !more {
			o.logger.Debug("search exhausted",
				"query", query,
				"pages", pageNum,
				"listings", len(all),
			)
			return all, nil
		}

		if pageNum == maxPages {
			o.logger.Warn("search pagination ceiling reached",
				"query", query,
				"max_pages", maxPages,
			)
		}
	}

	return all, nil
}

// SearchRanked runs Search and orders the result by similarity to query.
func (o *Orchestrator) SearchRanked(ctx context.Context, query string) ([]rank.Scored, error) {
	listings, err := o.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return rank.Rank(listings, query), nil
}

// DownloadBest resolves and downloads the best match for one mod name.
// Returns the written path, or an error wrapping ErrNoResults /
// ErrNoMatchingFile for the not-found cases.
func (o *Orchestrator) DownloadBest(ctx context.Context, name, version, dir string) (string, error) {
	ranked, err := o.SearchRanked(ctx, name)
	if err != nil {
		return "", err
	}
	if len(ranked) == 0 {
		return "", fmt.Errorf("%q: %w", name, ErrNoResults)
	}

	best := ranked[0]
	o.logger.Info("best match",
		"query", name,
		"mod", best.Listing.Name,
		"score", best.Score,
		"url", best.Listing.DetailURL,
	)

	row, found, err := o.resolver.ResolveFile(ctx, best.Listing.DetailURL, version)
	if err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf("%s (minecraft %s): %w", best.Listing.Name, version, ErrNoMatchingFile)
	}

	return o.downloader.Download(ctx, row.DownloadURL, row.Name, dir)
}
