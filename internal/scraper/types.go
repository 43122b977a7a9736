package scraper

// Listing is one scraped search result. DetailURL is always absolute: the
// base host is prefixed at construction time and consumers never resolve it
// again.
type Listing struct {
	Name      string
	Author    string
	Updated   string // free-form label as displayed, never parsed into a date
	DetailURL string
}

// FileRow is one row of a mod's file listing as rendered on the Files page.
// DownloadURL is absolute.
type FileRow struct {
	Name        string
	GameVersion string
	DownloadURL string
}

// Selectors holds every CSS path the extractor touches. A markup change on
// the site is fixed by editing (or overriding via config) this one set.
type Selectors struct {
	ResultRow    string `yaml:"result_row"`
	ResultName   string `yaml:"result_name"`
	ResultAuthor string `yaml:"result_author"`
	ResultDate   string `yaml:"result_date"`
	NextPage     string `yaml:"next_page"`

	FileRow         string `yaml:"file_row"`
	FileName        string `yaml:"file_name"`
	FileGameVersion string `yaml:"file_game_version"`
	FileDownload    string `yaml:"file_download"`

	// Affordances the browser navigator clicks.
	CookieAccept  string `yaml:"cookie_accept"`
	FilesNav      string `yaml:"files_nav"`
	VersionHeader string `yaml:"version_header"`
	FilesNextPage string `yaml:"files_next_page"`
}

// DefaultSelectors matches the legacy CurseForge markup.
func DefaultSelectors() *Selectors {
	return &Selectors{
		ResultRow:    "tr.results",
		ResultName:   "td.results-name a",
		ResultAuthor: "td.results-owner a",
		ResultDate:   "td.results-date abbr",
		NextPage:     "a.b-pagination-item[rel='next']",

		FileRow:         "tr.project-file-list-item",
		FileName:        "td.project-file-name a.overflow-tip",
		FileGameVersion: "td.project-file-game-version span.version-label",
		FileDownload:    "td.project-file-name a.overflow-tip",

		CookieAccept:  "#cookie-notice a.accept",
		FilesNav:      "nav a[href$='/files']",
		VersionHeader: "th.project-file-game-version a",
		FilesNextPage: "a.b-pagination-item[rel='next']",
	}
}
