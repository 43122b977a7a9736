package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"mcmodget/internal/config"
	"mcmodget/internal/fetcher"
	"mcmodget/internal/scraper"
)

type fakeFetcher struct {
	pages   map[string]string
	fetched []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*fetcher.FetchResponse, error) {
	f.fetched = append(f.fetched, url)
	body, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("unexpected fetch: %s", url)
	}
	return &fetcher.FetchResponse{StatusCode: 200, Body: []byte(body), URL: url}, nil
}

type fakeResolver struct {
	row   scraper.FileRow
	found bool
	err   error
	calls int
}

func (r *fakeResolver) ResolveFile(context.Context, string, string) (scraper.FileRow, bool, error) {
	r.calls++
	return r.row, r.found, r.err
}

type fakeDownloader struct {
	path  string
	calls int
	url   string
	name  string
}

func (d *fakeDownloader) Download(_ context.Context, rawURL, filename, _ string) (string, error) {
	d.calls++
	d.url = rawURL
	d.name = filename
	return d.path, nil
}

func resultRow(name string) string {
	return fmt.Sprintf(`
		<tr class="results">
			<td class="results-name"><a href="/mc-mods/%s">%s</a></td>
			<td class="results-owner"><a href="/members/x">x</a></td>
			<td class="results-date"><abbr>Jan 1, 2016</abbr></td>
		</tr>`, name, name)
}

func searchPage(rowCount int, page int, withNext bool) string {
	html := "<html><body><table>"
	for i := 0; i < rowCount; i++ {
		html += resultRow(fmt.Sprintf("mod-%d-%d", page, i))
	}
	html += "</table>"
	if withNext {
		html += `<a class="b-pagination-item" rel="next" href="#">Next</a>`
	}
	html += "</body></html>"
	return html
}

func newTestOrchestrator(t *testing.T, f PageFetcher, r FileResolver, d FileDownloader, maxPages int) (*Orchestrator, *scraper.Scraper) {
	t.Helper()
	cfg := config.Default()
	cfg.Pagination.MaxPages = maxPages
	scr := scraper.NewScraper(scraper.DefaultSelectors(), cfg.Site.BaseURL)
	return NewOrchestrator(cfg, slog.Default(), f, scr, r, d), scr
}

func TestSearchAccumulatesAllPages(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{}}
	o, scr := newTestOrchestrator(t, f, nil, nil, 50)

	// 3 pages of 20/20/5 records.
	counts := []int{20, 20, 5}
	for i, n := range counts {
		url := scr.SearchURL("/search", "tinker", i+1)
		f.pages[url] = searchPage(n, i+1, i+1 < len(counts))
	}

	got, err := o.Search(context.Background(), "tinker")
	require.NoError(t, err)
	require.Len(t, got, 45)
	require.Len(t, f.fetched, 3)

	// Page order, and row order within each page.
	require.Equal(t, "mod-1-0", got[0].Name)
	require.Equal(t, "mod-1-19", got[19].Name)
	require.Equal(t, "mod-2-0", got[20].Name)
	require.Equal(t, "mod-3-4", got[44].Name)
}

func TestSearchStopsAtCeiling(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{}}
	o, scr := newTestOrchestrator(t, f, nil, nil, 3)

	// Every page advertises a next page; the ceiling has to stop the loop.
	for i := 1; i <= 3; i++ {
		url := scr.SearchURL("/search", "endless", i)
		f.pages[url] = searchPage(2, i, true)
	}

	got, err := o.Search(context.Background(), "endless")
	require.NoError(t, err)
	require.Len(t, got, 6)
	require.Len(t, f.fetched, 3)
}

func TestSearchPropagatesExtractionError(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{}}
	o, scr := newTestOrchestrator(t, f, nil, nil, 50)

	f.pages[scr.SearchURL("/search", "broken", 1)] = `<html><body><table>
		<tr class="results"><td class="results-name"></td></tr>
	</table></body></html>`

	_, err := o.Search(context.Background(), "broken")
	require.Error(t, err)
}

func TestDownloadBestNoResults(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{}}
	o, scr := newTestOrchestrator(t, f, &fakeResolver{}, &fakeDownloader{}, 50)

	f.pages[scr.SearchURL("/search", "ghost", 1)] = searchPage(0, 1, false)

	_, err := o.DownloadBest(context.Background(), "ghost", "1.7.10", t.TempDir())
	require.ErrorIs(t, err, ErrNoResults)
}

func TestDownloadBestNoMatchingFile(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{}}
	r := &fakeResolver{found: false}
	o, scr := newTestOrchestrator(t, f, r, &fakeDownloader{}, 50)

	f.pages[scr.SearchURL("/search", "tinker", 1)] = searchPage(3, 1, false)

	_, err := o.DownloadBest(context.Background(), "tinker", "1.7.10", t.TempDir())
	require.ErrorIs(t, err, ErrNoMatchingFile)
	require.Equal(t, 1, r.calls)
}

func TestDownloadBestHappyPath(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{}}
	r := &fakeResolver{
		row: scraper.FileRow{
			Name:        "mod-1.7.10.jar",
			GameVersion: "1.7.10",
			DownloadURL: "https://minecraft.curseforge.com/projects/mod/files/1/download",
		},
		found: true,
	}
	d := &fakeDownloader{path: "/tmp/mod-1.7.10.jar"}
	o, scr := newTestOrchestrator(t, f, r, d, 50)

	f.pages[scr.SearchURL("/search", "mod", 1)] = searchPage(2, 1, false)

	path, err := o.DownloadBest(context.Background(), "mod", "1.7.10", t.TempDir())
	require.NoError(t, err)
	require.Equal(t, "/tmp/mod-1.7.10.jar", path)
	require.Equal(t, 1, d.calls)
	require.Equal(t, r.row.DownloadURL, d.url)
	require.Equal(t, "mod-1.7.10.jar", d.name)
}

func TestDownloadBestResolverError(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{}}
	r := &fakeResolver{err: errors.New("wait timeout")}
	o, scr := newTestOrchestrator(t, f, r, &fakeDownloader{}, 50)

	f.pages[scr.SearchURL("/search", "mod", 1)] = searchPage(1, 1, false)

	_, err := o.DownloadBest(context.Background(), "mod", "1.7.10", t.TempDir())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNoMatchingFile)
}
