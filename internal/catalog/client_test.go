package catalog

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datallboy/otmget/internal/domain"
	"github.com/datallboy/otmget/internal/testutil/otmserver"
)

func TestFetch(t *testing.T) {
	srv := otmserver.New(
		domain.Record{ID: "alps", Name: "Alps", Continent: "europe"},
		domain.Record{ID: "nepal", Name: "Nepal", Continent: "asia"},
	)
	defer srv.Close()

	c := New(srv.URL+"/", time.Second, srv.Client(), nil)
	records, err := c.Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, domain.Record{Number: 1, ID: "alps", Name: "Alps", Continent: "europe"}, records[0])
	assert.Equal(t, domain.Record{Number: 2, ID: "nepal", Name: "Nepal", Continent: "asia"}, records[1])
}

func TestFetchServerError(t *testing.T) {
	srv := otmserver.New(domain.Record{ID: "alps", Name: "Alps", Continent: "europe"})
	defer srv.Close()
	srv.SetCatalogStatus(http.StatusInternalServerError)

	c := New(srv.URL, time.Second, srv.Client(), nil)
	records, err := c.Fetch(context.Background())

	require.ErrorIs(t, err, domain.ErrNetwork)
	assert.Contains(t, err.Error(), "500")
	assert.Nil(t, records)
}

func TestFetchTransportError(t *testing.T) {
	srv := otmserver.New(domain.Record{ID: "alps", Name: "Alps", Continent: "europe"})
	url := srv.URL
	srv.Close()

	c := New(url, time.Second, nil, nil)
	_, err := c.Fetch(context.Background())
	require.ErrorIs(t, err, domain.ErrNetwork)
}

func TestFetchParseError(t *testing.T) {
	srv := otmserver.New()
	defer srv.Close()

	c := New(srv.URL, time.Second, srv.Client(), nil)
	_, err := c.Fetch(context.Background())
	require.ErrorIs(t, err, domain.ErrParse)
}
