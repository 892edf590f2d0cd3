package catalog

import (
	"strings"

	"github.com/datallboy/otmget/internal/domain"
)

// Filter keeps the records of one continent. Record numbers are left
// untouched so they still match the full listing.
func Filter(records []domain.Record, continent string) []domain.Record {
	continent = strings.TrimSpace(continent)
	if continent == "" {
		return records
	}

	out := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if strings.EqualFold(r.Continent, continent) {
			out = append(out, r)
		}
	}
	return out
}
