package domain

// Record is one area listed in the OpenTopoMap Garmin catalog.
type Record struct {
	Number    int // 1-based position in the catalog page, display only
	ID        string
	Name      string
	Continent string
}

// IsEurope reports whether the record offers a BaseCamp variant.
func (r Record) IsEurope() bool {
	return r.Continent == ContinentEurope
}

const ContinentEurope = "europe"
