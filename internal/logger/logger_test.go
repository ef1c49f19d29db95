package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelInfo, &buf)

	tests := []struct {
		name    string
		level   Level
		message string
		fields  Fields
		err     error
		want    bool // should log
	}{
		{
			name:    "info message",
			level:   LevelInfo,
			message: "Generated JSON",
			fields:  Fields{"track": "Daytona"},
			want:    true,
		},
		{
			name:    "debug below threshold",
			level:   LevelDebug,
			message: "debug message",
			want:    false,
		},
		{
			name:    "error with err",
			level:   LevelError,
			message: "Image download failed",
			err:     errors.New("unexpected status code: 404"),
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()

			logger.log(tt.level, tt.message, tt.fields, tt.err)

			logged := buf.Len() > 0
			if logged != tt.want {
				t.Fatalf("log() logged = %v, want %v", logged, tt.want)
			}
			if !logged {
				return
			}

			var entry LogEntry
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
			}
			if entry.Message != tt.message {
				t.Errorf("Message = %q, want %q", entry.Message, tt.message)
			}
			if entry.Level != string(tt.level) {
				t.Errorf("Level = %q, want %q", entry.Level, tt.level)
			}
			if tt.err != nil && entry.Error != tt.err.Error() {
				t.Errorf("Error = %q, want %q", entry.Error, tt.err.Error())
			}
		})
	}
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name      string
		minLevel  Level
		logLevel  Level
		shouldLog bool
	}{
		{"debug logs at debug", LevelDebug, LevelDebug, true},
		{"info logs at debug", LevelDebug, LevelInfo, true},
		{"debug doesn't log at info", LevelInfo, LevelDebug, false},
		{"warn doesn't log at error", LevelError, LevelWarn, false},
		{"error always logs", LevelDebug, LevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(tt.minLevel, &buf)

			logger.log(tt.logLevel, "test", nil, nil)

			if logged := buf.Len() > 0; logged != tt.shouldLog {
				t.Errorf("shouldLog = %v, want %v", logged, tt.shouldLog)
			}
		})
	}
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelInfo, &buf)

	logger.Debug("hidden", nil)
	if buf.Len() != 0 {
		t.Fatalf("debug logged at INFO: %q", buf.String())
	}

	logger.SetLevel(LevelDebug)
	logger.Debug("shown", nil)
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("debug not logged after SetLevel(DEBUG): %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{" WARN ", LevelWarn, false},
		{"Error", LevelError, false},
		{"verbose", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMetrics_Counter(t *testing.T) {
	m := NewMetrics()

	m.IncrCounter("rows.done")
	m.IncrCounter("rows.done")
	m.IncrCounter("rows.done")

	if got := m.GetSnapshot().Counters["rows.done"]; got != 3 {
		t.Errorf("Counter = %v, want 3", got)
	}
	if got := m.Counter("rows.done"); got != 3 {
		t.Errorf("Counter() = %v, want 3", got)
	}
}

func TestMetrics_Timing(t *testing.T) {
	m := NewMetrics()

	m.RecordTiming("page.fetch", 100*time.Millisecond)
	m.RecordTiming("page.fetch", 200*time.Millisecond)
	m.RecordTiming("page.fetch", 150*time.Millisecond)

	stats := m.GetSnapshot().Timings["page.fetch"]
	if stats.Count != 3 {
		t.Errorf("Timing count = %v, want 3", stats.Count)
	}
	if stats.Min != "100ms" {
		t.Errorf("Min timing = %v, want 100ms", stats.Min)
	}
	if stats.Max != "200ms" {
		t.Errorf("Max timing = %v, want 200ms", stats.Max)
	}
	if stats.Average != "150ms" {
		t.Errorf("Average timing = %v, want 150ms", stats.Average)
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := NewMetrics()
	m.IncrCounter("rows.skipped")
	m.RecordTiming("image.download", time.Second)

	m.Reset()

	snapshot := m.GetSnapshot()
	if len(snapshot.Counters) != 0 || len(snapshot.Timings) != 0 {
		t.Errorf("snapshot after Reset() = %+v, want empty", snapshot)
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	var buf bytes.Buffer
	previous := Default()
	SetDefault(New(LevelDebug, &buf))
	defer SetDefault(previous)

	Debug("test debug", nil)
	Info("test info", Fields{"key": "value"})
	Warn("test warning", nil)
	Error("test error", Fields{"component": "test"}, errors.New("test"))

	if lines := strings.Count(buf.String(), "\n"); lines != 4 {
		t.Errorf("logged %d lines, want 4", lines)
	}

	IncrCounter("test")
	RecordTiming("test", time.Second)

	if GetMetricsSnapshot().Counters["test"] < 1 {
		t.Error("GetMetricsSnapshot() missing counter")
	}
}
