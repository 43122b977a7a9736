package download

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"mcmodget/internal/checksum"
	"mcmodget/internal/fetcher"
)

type Downloader struct {
	fetcher *fetcher.Fetcher
	logger  *slog.Logger
}

func NewDownloader(f *fetcher.Fetcher, logger *slog.Logger) *Downloader {
	return &Downloader{fetcher: f, logger: logger}
}

// Download fetches rawURL and writes the body into dir under filename.
// Returns the path written.
func (d *Downloader) Download(ctx context.Context, rawURL, filename, dir string) (string, error) {
	target, err := NormalizeURL(rawURL)
	if err != nil {
		return "", err
	}

	name, err := SafeFilename(filename)
	if err != nil {
		return "", err
	}

	resp, err := d.fetcher.Fetch(ctx, target)
	if err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, resp.Body, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	d.logger.Info("downloaded file",
		"path", path,
		"bytes", len(resp.Body),
		"sha256", checksum.Sum(resp.Body),
	)
	return path, nil
}

// NormalizeURL re-encodes the path and query of a server-generated link so
// spaces and other special characters survive the request.
func NormalizeURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("invalid download URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("download URL must be absolute: %s", raw)
	}
	if u.RawQuery != "" {
		u.RawQuery = u.Query().Encode()
	}
	// URL.String escapes the path via EscapedPath.
	return u.String(), nil
}

// SafeFilename rejects names that would escape the target directory. The
// name comes verbatim from remote content, so path separators and dot
// entries are refused outright rather than silently rewritten.
func SafeFilename(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("empty filename from remote page")
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("refusing unsafe filename from remote page: %q", name)
	}
	return name, nil
}
