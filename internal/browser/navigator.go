// Package browser drives a headless Chrome session through the mod's Files
// page to locate the newest file matching a requested Minecraft version.
package browser

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"mcmodget/internal/config"
	"mcmodget/internal/identity"
	"mcmodget/internal/scraper"
)

type Navigator struct {
	cfg     *config.Config
	scraper *scraper.Scraper
	sel     *scraper.Selectors
	id      identity.Identity
	logger  *slog.Logger
}

func NewNavigator(cfg *config.Config, scr *scraper.Scraper, id identity.Identity, logger *slog.Logger) *Navigator {
	return &Navigator{
		cfg:     cfg,
		scraper: scr,
		sel:     cfg.GetSelectors(),
		id:      id,
		logger:  logger,
	}
}

// ResolveFile loads the mod's detail page, navigates to its file listing
// sorted by game version descending, and scans pages for a row whose
// version label exactly equals version. The second return is false when no
// file matches. The browser session is released on every exit path.
func (n *Navigator) ResolveFile(ctx context.Context, detailURL, version string) (scraper.FileRow, bool, error) {
	b, cleanup, err := n.launch(ctx)
	if err != nil {
		return scraper.FileRow{}, false, err
	}
	defer cleanup()

	page, err := b.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return scraper.FileRow{}, false, fmt.Errorf("failed to open page: %w", err)
	}
	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: n.id.UserAgent}); err != nil {
		return scraper.FileRow{}, false, err
	}
	if err := page.Navigate(detailURL); err != nil {
		return scraper.FileRow{}, false, fmt.Errorf("failed to open detail page: %w", err)
	}
	if err := page.Timeout(n.cfg.GetBrowserWaitTimeout()).WaitLoad(); err != nil {
		return scraper.FileRow{}, false, fmt.Errorf("detail page did not load: %w", err)
	}

	if n.dismissCookieBanner(page) {
		n.logger.Debug("cookie banner dismissed", "url", detailURL)
	}

	if err := n.openFiles(page); err != nil {
		return scraper.FileRow{}, false, err
	}

	// First click sorts the version column ascending, second reverses it so
	// newest-compatible files surface first.
	for i := 0; i < 2; i++ {
		if err := n.clickAndSettle(page, n.sel.VersionHeader); err != nil {
			return scraper.FileRow{}, false, fmt.Errorf("failed to sort by game version: %w", err)
		}
	}

	return n.scanPages(page, version)
}

// launch starts a Chrome session. A missing browser binary is reported as a
// configuration error before any navigation is attempted.
func (n *Navigator) launch(ctx context.Context) (*rod.Browser, func(), error) {
	l := launcher.New().Headless(n.cfg.BrowserHeadless())

	switch {
	case n.cfg.Browser.ChromePath != "":
		l = l.Bin(n.cfg.Browser.ChromePath)
	default:
		path, has := launcher.LookPath()
		if !has {
			return nil, nil, fmt.Errorf("no usable browser binary on this platform; set browser.chrome_path")
		}
		l = l.Bin(path)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	cleanup := func() {
		if err := b.Close(); err != nil {
			n.logger.Warn("failed to close browser", "error", err)
		}
		l.Cleanup()
	}
	return b, cleanup, nil
}

// dismissCookieBanner clicks the consent overlay if it is present. Absence
// is normal and reported as a plain false, never an error.
func (n *Navigator) dismissCookieBanner(page *rod.Page) bool {
	has, el, err := page.Has(n.sel.CookieAccept)
	if err != nil || !has {
		return false
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		n.logger.Debug("cookie banner click failed", "error", err)
		return false
	}
	return true
}

func (n *Navigator) openFiles(page *rod.Page) error {
	el, err := page.Timeout(n.cfg.GetBrowserWaitTimeout()).Element(n.sel.FilesNav)
	if err != nil {
		return fmt.Errorf("files navigation link not found (%s): %w", n.sel.FilesNav, err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("failed to open files page: %w", err)
	}
	return n.waitTable(page)
}

// clickAndSettle clicks sel and waits, bounded, for the file table to
// re-render. A timeout here is fatal to this mod's attempt.
func (n *Navigator) clickAndSettle(page *rod.Page, sel string) error {
	el, err := page.Timeout(n.cfg.GetBrowserWaitTimeout()).Element(sel)
	if err != nil {
		return fmt.Errorf("element not found (%s): %w", sel, err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return err
	}
	return n.waitTable(page)
}

func (n *Navigator) waitTable(page *rod.Page) error {
	p := page.Timeout(n.cfg.GetBrowserWaitTimeout())
	el, err := p.Element(n.sel.FileRow)
	if err != nil {
		return fmt.Errorf("file table did not appear: %w", err)
	}
	if err := el.WaitVisible(); err != nil {
		return fmt.Errorf("file table did not become visible: %w", err)
	}
	if settle := n.cfg.GetTableSettleDelay(); settle > 0 {
		if err := p.WaitStable(settle); err != nil {
			return fmt.Errorf("file table did not settle: %w", err)
		}
	}
	return nil
}

// scanPages walks the file-listing pagination looking for an exact version
// match. The page count is capped so a permanently-rendered "next" control
// cannot loop forever.
func (n *Navigator) scanPages(page *rod.Page, version string) (scraper.FileRow, bool, error) {
	for pageNum := 1; pageNum <= n.cfg.Pagination.MaxFilePages; pageNum++ {
		html, err := page.HTML()
		if err != nil {
			return scraper.FileRow{}, false, err
		}
		rows, err := n.scraper.ParseFileRows(html)
		if err != nil {
			return scraper.FileRow{}, false, err
		}

		n.logger.Debug("scanned file page", "page", pageNum, "rows", len(rows))

		if row, ok := MatchVersion(rows, version); ok {
			return row, true, nil
		}

		has, next, err := page.Has(n.sel.FilesNextPage)
		if err != nil {
			return scraper.FileRow{}, false, err
		}
		if !has {
			return scraper.FileRow{}, false, nil
		}
		if err := next.Click(proto.InputMouseButtonLeft, 1); err != nil {
			return scraper.FileRow{}, false, fmt.Errorf("failed to open next file page: %w", err)
		}
		if err := n.waitTable(page); err != nil {
			return scraper.FileRow{}, false, err
		}
	}

	n.logger.Warn("file pagination ceiling reached",
		"max_file_pages", n.cfg.Pagination.MaxFilePages,
		"version", version,
	)
	return scraper.FileRow{}, false, nil
}

// MatchVersion returns the first row whose compatibility label exactly
// equals version. No semantic version comparison: "1.7.1" does not match
// "1.7.10".
func MatchVersion(rows []scraper.FileRow, version string) (scraper.FileRow, bool) {
	for _, row := range rows {
		if row.GameVersion == version {
			return row, true
		}
	}
	return scraper.FileRow{}, false
}
