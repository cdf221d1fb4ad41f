package xslog

import (
	"bytes"
	"strings"
	"log/slog"
	"testing"

	go_json "github.com/goccy/go-json"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "debug", want: LevelDebug},
		{in: "INFO", want: LevelInfo},
		{in: "Warn", want: LevelWarn},
		{in: "warning", want: LevelWarn},
		{in: " error ", want: LevelError},
		{in: "trace", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Parse(%q) succeeded, want error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewLogger_WritesJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, LevelInfo)

	logger.Debug("dropped")
	logger.Info("rotation advanced", Index(2), Phase("dusk"))

	var entry map[string]any
	if err := go_json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry[slog.MessageKey] != "rotation advanced" {
		t.Errorf("msg = %v, want rotation advanced", entry[slog.MessageKey])
	}
	if entry["index"] != float64(2) {
		t.Errorf("index = %v, want 2", entry["index"])
	}
	if entry["phase"] != "dusk" {
		t.Errorf("phase = %v, want dusk", entry["phase"])
	}
}

func TestNewLoggerWithFormat_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewLoggerWithFormat(&buf, LevelDebug, FormatText).Debug("gradient computed", Phase("night"))

	if got := buf.String(); !strings.Contains(got, "msg=\"gradient computed\"") || !strings.Contains(got, "phase=night") {
		t.Errorf("text line = %q", got)
	}
}
