package cmd

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestNormalizeFlags(t *testing.T) {
	tests := []struct {
		alias string
		want  string
	}{
		{"oneline", "compact"},
		{"description", "desc"},
		{"cat", "category"},
		{"json", "json"},
		{"due", "due"},
	}
	for _, tt := range tests {
		if got := string(normalizeFlags(nil, tt.alias)); got != tt.want {
			t.Errorf("normalizeFlags(%q) = %q, want %q", tt.alias, got, tt.want)
		}
	}
}

func TestOnelineAliasSetsCompact(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.SetNormalizeFunc(normalizeFlags)
	compact := fs.Bool("compact", false, "")

	if err := fs.Parse([]string{"--oneline"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !*compact {
		t.Error("--oneline did not set the compact flag")
	}
}
