package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/pfrederiksen/track-assets/internal/assets"
	"github.com/pfrederiksen/track-assets/internal/logger"
	"github.com/pfrederiksen/track-assets/internal/pipeline"
	"gopkg.in/yaml.v3"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

var (
	doneLabel = color.New(color.FgHiGreen, color.Bold)
	skipLabel = color.New(color.FgHiRed, color.Bold)
	warnLabel = color.New(color.FgYellow)
	dimLabel  = color.New(color.FgWhite, color.Faint)
)

// FetchReport is the result of a pipeline run
type FetchReport struct {
	Summary *pipeline.Summary `json:"summary" yaml:"summary"`
	Metrics *logger.Snapshot  `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// UtilityReport is the result of an asset utility
type UtilityReport struct {
	Command   string               `json:"command" yaml:"command"`
	Output    string               `json:"output,omitempty" yaml:"output,omitempty"`
	Items     []assets.GalleryItem `json:"items,omitempty" yaml:"items,omitempty"`
	Results   []assets.Result      `json:"results,omitempty" yaml:"results,omitempty"`
	Succeeded int                  `json:"succeeded" yaml:"succeeded"`
	Failed    int                  `json:"failed" yaml:"failed"`
}

func newUtilityReport(command string, results []assets.Result) *UtilityReport {
	report := &UtilityReport{Command: command, Results: results}
	for _, r := range results {
		if r.OK() {
			report.Succeeded++
		} else {
			report.Failed++
		}
	}
	return report
}

// WriteFetchReport writes a run report in the specified format
func WriteFetchReport(w io.Writer, report *FetchReport, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, report)
	case FormatYAML:
		return writeYAML(w, report)
	case FormatText:
		return writeFetchText(w, report)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteUtilityReport writes a utility report in the specified format
func WriteUtilityReport(w io.Writer, report *UtilityReport, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, report)
	case FormatYAML:
		return writeYAML(w, report)
	case FormatText:
		return writeUtilityText(w, report)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

// writeFetchText prints one status line per row followed by the totals
func writeFetchText(w io.Writer, report *FetchReport) error {
	s := report.Summary

	for _, skip := range s.ManifestSkips {
		warnLabel.Fprint(w, "SKIP")
		fmt.Fprintf(w, " manifest line %d: %s\n", skip.Line, skip.Reason)
	}

	for _, o := range s.Outcomes {
		switch o.State {
		case pipeline.Done:
			doneLabel.Fprint(w, "DONE")
			fmt.Fprintf(w, " %s -> %s", o.Row.Name, o.Artifact.JSONPath)
			if o.Artifact.ImagePath != "" {
				fmt.Fprintf(w, ", %s", o.Artifact.ImagePath)
			}
			fmt.Fprintln(w)
			if o.ImageError != "" {
				warnLabel.Fprintf(w, "     no image: %s\n", o.ImageError)
			}
		default:
			skipLabel.Fprint(w, "SKIP")
			fmt.Fprintf(w, " %s [%s]: %s\n", o.Row.Name, o.Stage, o.Reason)
		}
	}

	if s.Total == 0 && len(s.ManifestSkips) == 0 {
		fmt.Fprintln(w, "No tracks in manifest.")
	}

	fmt.Fprintf(w, "\nTotal: %d tracks, %d done, %d skipped, %d images\n", s.Total, s.Done, s.Skipped, s.Images)
	dimLabel.Fprintf(w, "Output: %s (run %s)\n", s.OutputDir, s.RunID)

	if report.Metrics != nil {
		writeMetricsText(w, report.Metrics)
	}

	return nil
}

func writeMetricsText(w io.Writer, snap *logger.Snapshot) {
	fmt.Fprintln(w, "\nMetrics:")

	counters := make([]string, 0, len(snap.Counters))
	for name := range snap.Counters {
		counters = append(counters, name)
	}
	sort.Strings(counters)
	for _, name := range counters {
		fmt.Fprintf(w, "  %s: %d\n", name, snap.Counters[name])
	}

	timings := make([]string, 0, len(snap.Timings))
	for name := range snap.Timings {
		timings = append(timings, name)
	}
	sort.Strings(timings)
	for _, name := range timings {
		t := snap.Timings[name]
		fmt.Fprintf(w, "  %s: count=%d avg=%s min=%s max=%s\n", name, t.Count, t.Average, t.Min, t.Max)
	}
}

func writeUtilityText(w io.Writer, report *UtilityReport) error {
	for _, r := range report.Results {
		if r.OK() {
			doneLabel.Fprint(w, "OK")
			fmt.Fprintf(w, "   %s -> %s\n", r.Subject, r.Target)
		} else {
			skipLabel.Fprint(w, "FAIL")
			fmt.Fprintf(w, " line %d %s: %s\n", r.Line, r.Subject, r.Error)
		}
	}

	if report.Output != "" {
		fmt.Fprintf(w, "Wrote %d rows to %s\n", len(report.Items), report.Output)
	}

	fmt.Fprintf(w, "\nTotal: %d succeeded, %d failed\n", report.Succeeded, report.Failed)
	return nil
}
