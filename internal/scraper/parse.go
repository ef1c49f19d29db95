package scraper

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Parse builds a queryable document from raw HTML
func Parse(r io.Reader) (*goquery.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}

// Compile compiles a CSS selector into a matcher usable with NextMatching.
func Compile(selector string) (goquery.Matcher, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("compiling selector %q: %w", selector, err)
	}
	return sel, nil
}

// NextMatching returns the first element after the first node of sel, in
// document order, that matches m. Descendants of that node count as "after".
// The result is empty when nothing matches.
func NextMatching(doc *goquery.Document, sel *goquery.Selection, m goquery.Matcher) *goquery.Selection {
	if sel.Length() == 0 {
		return doc.FindNodes()
	}

	for n := nextInOrder(sel.Get(0)); n != nil; n = nextInOrder(n) {
		if n.Type == html.ElementNode && m.Match(n) {
			return doc.FindNodes(n)
		}
	}

	return doc.FindNodes()
}

// nextInOrder returns the node following n in a pre-order walk
func nextInOrder(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for ; n != nil; n = n.Parent {
		if n.NextSibling != nil {
			return n.NextSibling
		}
	}
	return nil
}
