package targets

import (
	"fmt"
	"strings"

	"github.com/datallboy/otmget/internal/domain"
)

// Confirmer answers whether the BaseCamp archive of a European record
// should be downloaded as well.
type Confirmer interface {
	Confirm(rec domain.Record) (bool, error)
}

// Builder expands selected records into archive URLs.
type Builder struct {
	BaseURL string
	Confirm Confirmer
}

func NewBuilder(baseURL string, c Confirmer) *Builder {
	return &Builder{BaseURL: baseURL, Confirm: c}
}

// Build returns every target of the selection in selection order. The
// confirmer is asked once per European record, before anything downloads.
func (b *Builder) Build(selection []domain.Record) ([]domain.Target, error) {
	out := make([]domain.Target, 0, len(selection)*3)
	for _, rec := range selection {
		basecamp := false
		if rec.IsEurope() && b.Confirm != nil {
			ok, err := b.Confirm.Confirm(rec)
			if err != nil {
				return nil, fmt.Errorf("basecamp prompt for %s: %w", rec.Name, err)
			}
			basecamp = ok
		}
		out = append(out, ForRecord(b.BaseURL, rec, basecamp)...)
	}
	return out, nil
}

// ForRecord builds the base and contours archive URLs of rec, plus the
// BaseCamp one for European records when basecamp is set:
//
//	{base}/{continent}/{id}/otm-{id}.zip
//	{base}/{continent}/{id}/otm-{id}-contours.zip
//	{base}/europe/{id}/otm-{id}-basecamp.zip
func ForRecord(baseURL string, rec domain.Record, basecamp bool) []domain.Target {
	base := strings.TrimRight(baseURL, "/")
	dir := fmt.Sprintf("%s/%s/%s", base, rec.Continent, rec.ID)

	out := []domain.Target{
		domain.Target(fmt.Sprintf("%s/otm-%s.zip", dir, rec.ID)),
		domain.Target(fmt.Sprintf("%s/otm-%s-contours.zip", dir, rec.ID)),
	}
	if basecamp && rec.IsEurope() {
		out = append(out, domain.Target(fmt.Sprintf("%s/%s/%s/otm-%s-basecamp.zip", base, domain.ContinentEurope, rec.ID, rec.ID)))
	}
	return out
}
