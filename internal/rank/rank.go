// Package rank orders scraped listings by how closely their display name
// matches the user's query.
package rank

import (
	"sort"
	"strings"

	"github.com/antzucaro/matchr"

	"mcmodget/internal/scraper"
)

type Scored struct {
	Listing scraper.Listing
	Score   float64
}

// Score returns a normalized [0,1] similarity between a display name and
// the query, case-insensitive.
func Score(name, query string) float64 {
	return matchr.JaroWinkler(strings.ToLower(name), strings.ToLower(query), false)
}

// Rank sorts listings by descending similarity to query. The sort is
// stable: equal scores keep their scraped order. There is no threshold —
// callers that want "the best match" take the first element even when its
// score is low.
func Rank(listings []scraper.Listing, query string) []Scored {
	scored := make([]Scored, 0, len(listings))
	for _, l := range listings {
		scored = append(scored, Scored{
			Listing: l,
			Score:   Score(l.Name, query),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}
