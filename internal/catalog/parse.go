package catalog

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/datallboy/otmget/internal/domain"
)

const countryClass = "country"

// Parse reads the catalog markup and returns one record per
// <tr class="country" id=".." continent=".."> row, numbered 1..N in
// document order.
func Parse(r io.Reader) ([]domain.Record, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}

	var rows []*html.Node
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" && hasClass(n, countryClass) {
			rows = append(rows, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no country rows found", domain.ErrParse)
	}

	records := make([]domain.Record, 0, len(rows))
	for i, row := range rows {
		id := attr(row, "id")
		continent := attr(row, "continent")
		cell := firstElement(row, "td")

		switch {
		case id == "":
			return nil, fmt.Errorf("%w: country row %d has no id", domain.ErrParse, i+1)
		case continent == "":
			return nil, fmt.Errorf("%w: country row %q has no continent", domain.ErrParse, id)
		case cell == nil:
			return nil, fmt.Errorf("%w: country row %q has no cells", domain.ErrParse, id)
		}

		records = append(records, domain.Record{
			Number:    i + 1,
			ID:        id,
			Name:      strings.TrimSpace(textContent(cell)),
			Continent: continent,
		})
	}

	return records, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// firstElement returns the first descendant element named tag, depth-first.
func firstElement(n *html.Node, tag string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			return c
		}
		if found := firstElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
