package infobox

import "github.com/PuerkitoBio/goquery"

// Locator finds the info block on a page. It returns nil when the page has none.
type Locator interface {
	Locate(doc *goquery.Document) *goquery.Selection
}

// FirstTable locates the first table element in the document
type FirstTable struct{}

// Locate implements Locator
func (FirstTable) Locate(doc *goquery.Document) *goquery.Selection {
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil
	}
	return table
}

// LocatorFunc adapts a function to the Locator interface
type LocatorFunc func(doc *goquery.Document) *goquery.Selection

// Locate implements Locator
func (f LocatorFunc) Locate(doc *goquery.Document) *goquery.Selection {
	return f(doc)
}
