package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/pfrederiksen/track-assets/internal/assets"
	"github.com/pfrederiksen/track-assets/internal/logger"
	"github.com/pfrederiksen/track-assets/internal/manifest"
	"github.com/pfrederiksen/track-assets/internal/pipeline"
)

func errorIs(err, target error) bool {
	return errors.Is(err, target)
}

func sampleSummary() *pipeline.Summary {
	return &pipeline.Summary{
		RunID:     "run-1",
		OutputDir: "tracks",
		Total:     2,
		Done:      1,
		Skipped:   1,
		Outcomes: []pipeline.Outcome{
			{
				Row:        manifest.Row{Line: 2, Name: "Daytona"},
				State:      pipeline.Done,
				Stage:      pipeline.Done,
				Artifact:   &pipeline.Artifact{Name: "Daytona", JSONPath: "tracks/Daytona.json"},
				ImageError: "no image link in info block",
			},
			{
				Row:    manifest.Row{Line: 3, Name: "Spa"},
				State:  pipeline.Skipped,
				Stage:  pipeline.Parsing,
				Reason: "parsing HTML: boom",
			},
		},
	}
}

func TestWriteFetchReport_Text(t *testing.T) {
	tests := []struct {
		name     string
		report   *FetchReport
		contains []string
		excludes []string
	}{
		{
			name:   "outcomes and totals",
			report: &FetchReport{Summary: sampleSummary()},
			contains: []string{
				"DONE Daytona -> tracks/Daytona.json\n",
				"no image: no image link in info block",
				"SKIP Spa [PARSING]: parsing HTML: boom",
				"Total: 2 tracks, 1 done, 1 skipped, 0 images",
				"Output: tracks (run run-1)",
			},
			excludes: []string{"Metrics:"},
		},
		{
			name:     "empty manifest",
			report:   &FetchReport{Summary: &pipeline.Summary{}},
			contains: []string{"No tracks in manifest.", "Total: 0 tracks"},
		},
		{
			name: "verbose metrics",
			report: &FetchReport{
				Summary: sampleSummary(),
				Metrics: &logger.Snapshot{
					Counters: map[string]int64{"rows.skipped": 1, "rows.done": 1},
					Timings: map[string]logger.TimingStats{
						"page.fetch": {Count: 2, Average: "10ms", Min: "5ms", Max: "15ms"},
					},
				},
			},
			contains: []string{"Metrics:\n  rows.done: 1\n  rows.skipped: 1\n", "page.fetch: count=2 avg=10ms min=5ms max=15ms"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteFetchReport(&buf, tt.report, FormatText); err != nil {
				t.Fatalf("WriteFetchReport() error = %v", err)
			}
			out := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(out, unwanted) {
					t.Errorf("output should not contain %q:\n%s", unwanted, out)
				}
			}
		})
	}
}

func TestWriteFetchReport_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFetchReport(&buf, &FetchReport{Summary: sampleSummary()}, "csv"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestWriteUtilityReport_YAML(t *testing.T) {
	report := newUtilityReport("rename", []assets.Result{
		{Line: 2, Subject: "a.png", Target: "Alpha.png"},
		{Line: 3, Subject: "b.png", Err: assets.ErrFileNotFound, Error: "file not found: b.png"},
	})

	var buf bytes.Buffer
	if err := WriteUtilityReport(&buf, report, FormatYAML); err != nil {
		t.Fatalf("WriteUtilityReport() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"command: rename", "succeeded: 1", "failed: 1", "file not found: b.png"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		got, err := parseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}
