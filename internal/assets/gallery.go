package assets

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/pfrederiksen/track-assets/internal/logger"
	"github.com/pfrederiksen/track-assets/internal/scraper"
)

// Gallery CSV headers
const (
	ColumnPNGFile = "PNG File Name"
	ColumnTitle   = "Gallery Item Title"
)

const galleryTitleSelector = `div[data-testid="gallery-item-title"]`

// GalleryItem pairs an image file name with the title shown under it
type GalleryItem struct {
	File  string `json:"file" yaml:"file"`
	Title string `json:"title" yaml:"title"`
}

// uriPattern finds "uri" members at any depth of a data-image-info value
var uriPattern = regexp.MustCompile(`"uri"\s*:\s*"([^"]+)"`)

// ExtractGallery lists the PNG images of a saved gallery page. The title of
// each image is the first gallery title element after it in document order,
// or "" when there is none.
func ExtractGallery(doc *goquery.Document) ([]GalleryItem, error) {
	titleMatcher, err := scraper.Compile(galleryTitleSelector)
	if err != nil {
		return nil, err
	}

	items := make([]GalleryItem, 0)
	doc.Find("wow-image").Each(func(i int, img *goquery.Selection) {
		raw, ok := img.Attr("data-image-info")
		if !ok || raw == "" {
			return
		}

		file := imageFile(raw)
		if file == "" {
			logger.Debug("Ignoring image without PNG uri", logger.Fields{"index": i})
			return
		}

		title := scraper.NextMatching(doc, img, titleMatcher)
		items = append(items, GalleryItem{
			File:  file,
			Title: strings.TrimSpace(title.Text()),
		})
	})

	return items, nil
}

// imageFile returns the file name of the first PNG uri in info, or ""
func imageFile(info string) string {
	for _, m := range uriPattern.FindAllStringSubmatch(info, -1) {
		if file := pngFileName(strings.ReplaceAll(m[1], `\/`, "/")); file != "" {
			return file
		}
	}
	return ""
}

// pngFileName returns the last path element of uri without its query, or ""
// when uri does not name a PNG file
func pngFileName(uri string) string {
	uri, _, _ = strings.Cut(uri, "?")
	if !strings.HasSuffix(uri, ".png") {
		return ""
	}
	return path.Base(uri)
}

// ExtractGalleryFiles parses every HTML file matching pattern (a doublestar
// glob) in lexical order and concatenates their gallery items.
func ExtractGalleryFiles(pattern string) ([]GalleryItem, error) {
	base, glob := doublestar.SplitPattern(pattern)
	matches, err := doublestar.Glob(os.DirFS(base), glob)
	if err != nil {
		return nil, fmt.Errorf("matching %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match %s", pattern)
	}
	sort.Strings(matches)

	var items []GalleryItem
	for _, match := range matches {
		name := filepath.Join(base, filepath.FromSlash(match))
		fileItems, err := extractGalleryFile(name)
		if err != nil {
			return nil, err
		}
		logger.Debug("Extracted gallery", logger.Fields{"file": name, "items": len(fileItems)})
		items = append(items, fileItems...)
	}

	return items, nil
}

func extractGalleryFile(name string) ([]GalleryItem, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	doc, err := scraper.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return ExtractGallery(doc)
}

// WriteGalleryCSV writes items with the gallery header row
func WriteGalleryCSV(w io.Writer, items []GalleryItem) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{ColumnPNGFile, ColumnTitle}); err != nil {
		return err
	}
	for _, item := range items {
		if err := writer.Write([]string{item.File, item.Title}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
