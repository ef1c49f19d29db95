// Package pipeline runs the scrape-extract-download-emit batch over a manifest.
//
// Each row moves through Pending, Fetching, Parsing, Extracting and Writing to
// Done, or stops in Skipped. ProcessRow computes one row's Outcome using only
// the injected fetcher, downloader and writer; Run drives the rows in manifest
// order, enforces one owner per sanitized name and aggregates a Summary.
// A failing row never stops the batch.
package pipeline
