package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datallboy/otmget/internal/domain"
	"github.com/datallboy/otmget/internal/testutil/otmserver"
)

func TestParseDocumentOrder(t *testing.T) {
	want := []domain.Record{
		{ID: "alps", Name: "Alps", Continent: "europe"},
		{ID: "japan", Name: "Japan", Continent: "asia"},
		{ID: "chile", Name: "Chile", Continent: "south-america"},
	}

	got, err := Parse(strings.NewReader(otmserver.CatalogPage(want)))
	require.NoError(t, err)
	require.Len(t, got, len(want))

	for i, r := range got {
		assert.Equal(t, i+1, r.Number)
		assert.Equal(t, want[i].ID, r.ID)
		assert.Equal(t, want[i].Name, r.Name)
		assert.Equal(t, want[i].Continent, r.Continent)
	}
}

func TestParseIgnoresOtherRows(t *testing.T) {
	page := `<html><body><table>
<tr class="header"><td>Area</td></tr>
<tr class="odd country" id="germany" continent="europe"><td> <b>Germany</b> </td><td>12 MB</td></tr>
<tr><td>footer</td></tr>
</table></body></html>`

	got, err := Parse(strings.NewReader(page))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.Record{Number: 1, ID: "germany", Name: "Germany", Continent: "europe"}, got[0])
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		page string
	}{
		{"empty page", ""},
		{"no country rows", `<table><tr><td>nothing</td></tr></table>`},
		{"missing id", `<table><tr class="country" continent="europe"><td>X</td></tr></table>`},
		{"missing continent", `<table><tr class="country" id="x"><td>X</td></tr></table>`},
		{"missing cell", `<table><tr class="country" id="x" continent="europe"><th>X</th></tr></table>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.page))
			require.ErrorIs(t, err, domain.ErrParse)
			assert.Nil(t, got)
		})
	}
}

func TestFilter(t *testing.T) {
	records := []domain.Record{
		{Number: 1, ID: "alps", Continent: "europe"},
		{Number: 2, ID: "japan", Continent: "asia"},
		{Number: 3, ID: "norway", Continent: "europe"},
	}

	got := Filter(records, "Europe")
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Number)
	assert.Equal(t, 3, got[1].Number)

	assert.Equal(t, records, Filter(records, " "))
}
