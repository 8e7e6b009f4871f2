package date

import (
	"encoding/json"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Date
		wantErr bool
	}{
		{"2024-03-15", New(2024, time.March, 15), false},
		{"2026-01-01", New(2026, time.January, 1), false},
		{"2024-3-15", Date{}, true},
		{"15.03.2024", Date{}, true},
		{"2024-13-01", Date{}, true},
		{"not a date", Date{}, true},
		{"", Date{}, true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Parse(%q) expected error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	d := New(2024, time.December, 9)
	if got := d.String(); got != "2024-12-09" {
		t.Errorf("String() = %q, want 2024-12-09", got)
	}
}

func TestCompare(t *testing.T) {
	early := New(2024, time.January, 15)
	late := New(2024, time.March, 1)

	if got := early.Compare(late); got != -1 {
		t.Errorf("early.Compare(late) = %d, want -1", got)
	}
	if got := late.Compare(early); got != 1 {
		t.Errorf("late.Compare(early) = %d, want 1", got)
	}
	if got := early.Compare(early); got != 0 {
		t.Errorf("early.Compare(early) = %d, want 0", got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := New(2025, time.June, 30)

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2025-06-30"` {
		t.Fatalf("marshal = %s, want \"2025-06-30\"", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}

func TestJSONUnmarshalInvalid(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"soon"`), &d); err == nil {
		t.Error("expected error for non-date string")
	}
	if err := json.Unmarshal([]byte(`42`), &d); err == nil {
		t.Error("expected error for non-string value")
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	d := New(2025, time.February, 14)

	data, err := yaml.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back Date
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}
