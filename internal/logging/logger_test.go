package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	DisableColors()
	SetLevel(LevelWarn)
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		SetLevel(LevelNotice)
		UseColors = true
	})

	Error("error message")
	Warn("warn message")
	Info("info message")
	Debug("debug message")

	out := buf.String()
	if !strings.Contains(out, "ERR error message") {
		t.Errorf("error line missing from output: %q", out)
	}
	if !strings.Contains(out, "WRN warn message") {
		t.Errorf("warn line missing from output: %q", out)
	}
	if strings.Contains(out, "info message") || strings.Contains(out, "debug message") {
		t.Errorf("suppressed levels leaked into output: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"CRIT", LevelCrit},
		{"critical", LevelCrit},
		{"ERROR", LevelError},
		{"warn", LevelWarn},
		{"Warning", LevelWarn},
		{"NOTICE", LevelNotice},
		{"info", LevelInfo},
		{"DEBUG", LevelDebug},
		{" debug ", LevelDebug},
		{"bogus", LevelNotice},
		{"", LevelNotice},
	}
	for _, tc := range tests {
		if got := ParseLevel(tc.in); got != tc.want {
			t.Errorf("ParseLevel(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
