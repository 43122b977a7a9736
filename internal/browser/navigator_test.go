package browser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mcmodget/internal/scraper"
)

func fixtureRows() []scraper.FileRow {
	return []scraper.FileRow{
		{Name: "demo-1.12.2.jar", GameVersion: "1.12.2", DownloadURL: "https://minecraft.curseforge.com/projects/demo/files/3/download"},
		{Name: "demo-1.7.10.jar", GameVersion: "1.7.10", DownloadURL: "https://minecraft.curseforge.com/projects/demo/files/2/download"},
		{Name: "demo-1.7.2.jar", GameVersion: "1.7.2", DownloadURL: "https://minecraft.curseforge.com/projects/demo/files/1/download"},
	}
}

func TestMatchVersionExact(t *testing.T) {
	row, ok := MatchVersion(fixtureRows(), "1.7.10")
	require.True(t, ok)
	require.Equal(t, "1.7.10", row.GameVersion)
	require.Equal(t, "demo-1.7.10.jar", row.Name)
	require.True(t, len(row.DownloadURL) > 0)
	require.Contains(t, row.DownloadURL, "https://minecraft.curseforge.com/")
}

func TestMatchVersionNoSemanticMatching(t *testing.T) {
	// "1.7.1" is a prefix of "1.7.10" but must not match it.
	rows := []scraper.FileRow{
		{Name: "demo-1.7.10.jar", GameVersion: "1.7.10"},
	}
	_, ok := MatchVersion(rows, "1.7.1")
	require.False(t, ok)
}

func TestMatchVersionNotFound(t *testing.T) {
	_, ok := MatchVersion(fixtureRows(), "1.16.5")
	require.False(t, ok)

	_, ok = MatchVersion(nil, "1.7.10")
	require.False(t, ok)
}

func TestMatchVersionFirstOfEqualLabels(t *testing.T) {
	rows := []scraper.FileRow{
		{Name: "newest.jar", GameVersion: "1.7.10"},
		{Name: "older.jar", GameVersion: "1.7.10"},
	}
	row, ok := MatchVersion(rows, "1.7.10")
	require.True(t, ok)
	// Table is sorted newest-first before scanning, so the first hit wins.
	require.Equal(t, "newest.jar", row.Name)
}
