// Package otmserver serves a fake garmin.opentopomap.org for tests: a
// catalog page built from records and archive files held in memory.
package otmserver

import (
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/labstack/echo/v5"

	"github.com/datallboy/otmget/internal/domain"
)

type Server struct {
	*httptest.Server

	mu        sync.RWMutex
	records   []domain.Record
	files     map[string][]byte // keyed by URL path
	truncated map[string]bool
	noLength  map[string]bool
	headSize  map[string]int

	catalogStatus atomic.Int32
	requests      atomic.Int64
}

// New starts a server listing records. Every record gets a base and a
// contours archive; European records also get a basecamp archive.
func New(records ...domain.Record) *Server {
	s := &Server{
		records:   records,
		files:     make(map[string][]byte),
		truncated: make(map[string]bool),
		noLength:  make(map[string]bool),
		headSize:  make(map[string]int),
	}
	s.catalogStatus.Store(http.StatusOK)

	for _, r := range records {
		for _, suffix := range []string{"", "-contours"} {
			p := ArchivePath(r, suffix)
			s.files[p] = []byte("archive " + p)
		}
		if r.IsEurope() {
			p := ArchivePath(r, "-basecamp")
			s.files[p] = []byte("archive " + p)
		}
	}

	e := echo.New()
	e.GET("/", s.handleCatalog)
	e.GET("/:continent/:id/:file", s.handleArchive)
	e.HEAD("/:continent/:id/:file", s.handleArchive)

	s.Server = httptest.NewServer(e)
	return s
}

// ArchivePath is the URL path of one archive of r, e.g. "-contours".
func ArchivePath(r domain.Record, suffix string) string {
	return fmt.Sprintf("/%s/%s/otm-%s%s.zip", r.Continent, r.ID, r.ID, suffix)
}

// SetCatalogStatus makes the catalog page answer with status.
func (s *Server) SetCatalogStatus(status int) {
	s.catalogStatus.Store(int32(status))
}

// SetFile replaces the body served at path.
func (s *Server) SetFile(path string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = data
}

// Truncate makes GET on path announce the full length but stop halfway,
// so the client sees the connection drop mid-stream.
func (s *Server) Truncate(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.truncated[path] = true
}

// OmitLength makes HEAD and GET on path skip the Content-Length header.
func (s *Server) OmitLength(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.noLength[path] = true
}

// SetHeadLength makes HEAD on path announce n bytes whatever GET serves.
func (s *Server) SetHeadLength(path string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.headSize[path] = n
}

// Requests is the number of requests served so far.
func (s *Server) Requests() int64 {
	return s.requests.Load()
}

func (s *Server) handleCatalog(c *echo.Context) error {
	s.requests.Add(1)

	status := int(s.catalogStatus.Load())
	if status != http.StatusOK {
		return c.String(status, http.StatusText(status))
	}

	return c.HTML(http.StatusOK, CatalogPage(s.records))
}

func (s *Server) handleArchive(c *echo.Context) error {
	s.requests.Add(1)

	p := c.Request().URL.Path

	s.mu.RLock()
	data, ok := s.files[p]
	truncated := s.truncated[p]
	noLength := s.noLength[p]
	headSize, headOverride := s.headSize[p]
	s.mu.RUnlock()

	if !ok {
		return c.String(http.StatusNotFound, "not found")
	}

	w := c.Response()
	w.Header().Set("Content-Type", "application/zip")
	if !noLength {
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	}

	if c.Request().Method == http.MethodHead {
		if headOverride {
			w.Header().Set("Content-Length", strconv.Itoa(headSize))
		}
		w.WriteHeader(http.StatusOK)
		return nil
	}

	w.WriteHeader(http.StatusOK)
	if truncated {
		// Short write against the announced length; net/http closes the connection
		_, err := w.Write(data[:len(data)/2])
		return err
	}
	_, err := w.Write(data)
	return err
}

// CatalogPage renders records the way garmin.opentopomap.org lists them.
func CatalogPage(records []domain.Record) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><head><title>OpenTopoMap Garmin</title></head><body>\n<table>\n")
	b.WriteString("<tr><th>Area</th><th>Download</th></tr>\n")
	for _, r := range records {
		fmt.Fprintf(&b, "<tr class=\"country\" id=\"%s\" continent=\"%s\"><td>%s</td><td><a href=\"%s\">zip</a></td></tr>\n",
			html.EscapeString(r.ID), html.EscapeString(r.Continent), html.EscapeString(r.Name),
			html.EscapeString(ArchivePath(r, "")))
	}
	b.WriteString("</table>\n</body></html>\n")
	return b.String()
}
