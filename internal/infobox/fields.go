package infobox

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Known header labels
const (
	LabelTrackType          = "Track Type"
	LabelTrackGradeFilter   = "TrackGradeFilter"
	LabelLength             = "Length"
	LabelLocation           = "Location"
	LabelRecommendedClasses = "Recommended classes"
)

// Fields holds the values extracted from an info block. A nil field means the
// label was not present; a pointer to "" means it was present with no text.
type Fields struct {
	TrackType          *string `json:"Track Type" yaml:"Track Type"`
	TrackGradeFilter   *string `json:"TrackGradeFilter" yaml:"TrackGradeFilter"`
	Length             *string `json:"Length" yaml:"Length"`
	Location           *string `json:"Location" yaml:"Location"`
	RecommendedClasses *string `json:"Recommended classes" yaml:"Recommended classes"`
}

// field returns the slot for a label, or nil for unknown labels
func (f *Fields) field(label string) **string {
	switch label {
	case LabelTrackType:
		return &f.TrackType
	case LabelTrackGradeFilter:
		return &f.TrackGradeFilter
	case LabelLength:
		return &f.Length
	case LabelLocation:
		return &f.Location
	case LabelRecommendedClasses:
		return &f.RecommendedClasses
	}
	return nil
}

// Set assigns value to the field named by label. It reports false for unknown labels.
func (f *Fields) Set(label, value string) bool {
	slot := f.field(label)
	if slot == nil {
		return false
	}
	*slot = &value
	return true
}

// Get returns the value for label and whether it is present.
func (f *Fields) Get(label string) (string, bool) {
	slot := f.field(label)
	if slot == nil || *slot == nil {
		return "", false
	}
	return **slot, true
}

// Extract reads the known labels from the info block found by loc. A page
// without an info block yields Fields with every value absent.
func Extract(doc *goquery.Document, loc Locator) Fields {
	var fields Fields

	block := loc.Locate(doc)
	if block == nil {
		return fields
	}

	block.Find("tr").Each(func(i int, row *goquery.Selection) {
		th := row.Find("th").First()
		td := row.Find("td").First()
		if th.Length() == 0 || td.Length() == 0 {
			return
		}

		// Repeated labels overwrite earlier ones
		fields.Set(strings.TrimSpace(th.Text()), strings.TrimSpace(td.Text()))
	})

	return fields
}

// ImageLink returns the href of the first anchor inside the info block. It
// reports false when there is no block, no anchor, or the anchor has no href.
func ImageLink(doc *goquery.Document, loc Locator) (string, bool) {
	block := loc.Locate(doc)
	if block == nil {
		return "", false
	}

	anchor := block.Find("a").First()
	if anchor.Length() == 0 {
		return "", false
	}

	return anchor.Attr("href")
}
