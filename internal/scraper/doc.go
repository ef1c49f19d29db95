// Package scraper provides HTTP fetching and HTML parsing for track reference pages.
//
// A Fetcher performs a single GET per URL with no retry and classifies the
// response: anything other than 200 OK becomes a *StatusError, transport faults
// are returned wrapped. Parse turns raw HTML into a goquery document, and
// NextMatching walks forward in document order from a selection, which is how
// gallery titles are paired with the images that precede them.
package scraper
