// Package infobox extracts structured track metadata from reference pages.
//
// The information table ("info block") is found by a pluggable Locator. The
// default, FirstTable, takes the first table element on the page regardless of
// what it contains. Extraction walks the block's rows and maps five known
// header labels to the text of the adjacent data cell.
package infobox
