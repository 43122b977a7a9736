package normalize

import (
	"regexp"
	"strings"
)

var multiSpace = regexp.MustCompile(`\s+`)

// Text cleans a scraped fragment: NBSPs become regular spaces, runs of
// whitespace collapse to one space, leading/trailing whitespace goes.
// Scraped names and labels pass through here before entering records.
func Text(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
