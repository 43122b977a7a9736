package scraper

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"mcmodget/internal/normalize"
)

type Scraper struct {
	selectors *Selectors
	baseURL   string
}

func NewScraper(selectors *Selectors, baseURL string) *Scraper {
	return &Scraper{
		selectors: selectors,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// ParseSearchResults extracts every search-result row. A row with a missing
// required field is a structural error: the site markup changed and partial
// output would be misleading, so extraction fails as a whole.
func (s *Scraper) ParseSearchResults(html string) ([]Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var listings []Listing
	var rowErr error

	doc.Find(s.selectors.ResultRow).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		nameEl := sel.Find(s.selectors.ResultName).First()
		name := normalize.Text(nameEl.Text())
		if name == "" {
			rowErr = fmt.Errorf("result row %d: missing name (%s)", i, s.selectors.ResultName)
			return false
		}

		href, ok := nameEl.Attr("href")
		if !ok || href == "" {
			rowErr = fmt.Errorf("result row %d: missing detail href", i)
			return false
		}

		author := normalize.Text(sel.Find(s.selectors.ResultAuthor).First().Text())
		if author == "" {
			rowErr = fmt.Errorf("result row %d: missing author (%s)", i, s.selectors.ResultAuthor)
			return false
		}

		dateEl := sel.Find(s.selectors.ResultDate).First()
		if dateEl.Length() == 0 {
			rowErr = fmt.Errorf("result row %d: missing date (%s)", i, s.selectors.ResultDate)
			return false
		}

		listings = append(listings, Listing{
			Name:      name,
			Author:    author,
			Updated:   normalize.Text(dateEl.Text()),
			DetailURL: s.Absolute(href),
		})
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	return listings, nil
}

// HasNextPage reports whether the page carries a "next page" affordance.
func (s *Scraper) HasNextPage(html string) (bool, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc.Find(s.selectors.NextPage).Length() > 0, nil
}

// ParseFileRows extracts the file-listing rows from a rendered Files page.
// Unlike search rows these are scanned, not aborted on: a row missing its
// version label or link is skipped because decorative rows (ads, headers)
// share the table.
func (s *Scraper) ParseFileRows(html string) ([]FileRow, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var rows []FileRow
	doc.Find(s.selectors.FileRow).Each(func(i int, sel *goquery.Selection) {
		version := normalize.Text(sel.Find(s.selectors.FileGameVersion).First().Text())
		link := sel.Find(s.selectors.FileDownload).First()
		href, ok := link.Attr("href")
		if version == "" || !ok || href == "" {
			return
		}
		rows = append(rows, FileRow{
			Name:        normalize.Text(link.Text()),
			GameVersion: version,
			DownloadURL: s.Absolute(href),
		})
	})

	return rows, nil
}

// SearchURL builds the search-results URL for a query at a page number.
func (s *Scraper) SearchURL(searchPath, query string, page int) string {
	q := url.Values{}
	q.Set("search", query)
	if page > 1 {
		q.Set("page", fmt.Sprintf("%d", page))
	}
	return s.baseURL + searchPath + "?" + q.Encode()
}

// Absolute prefixes the base host onto a relative href. Already-absolute
// URLs pass through untouched.
func (s *Scraper) Absolute(href string) string {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return s.baseURL + href
}
