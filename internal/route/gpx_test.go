package route

import (
	"strings"
	"testing"
	"time"
)

func floatPtr(v float64) *float64 { return &v }

func TestGPXRenderStructure(t *testing.T) {
	doc := GPXDocument{
		Name:        "Morning Loop",
		Description: "Generated loop",
		Author:      "runcoach",
		Time:        time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC),
		Points: []Point{
			{Lat: 52.520008, Lng: 13.404954, Elevation: floatPtr(34.5)},
			{Lat: 52.521000, Lng: 13.406000},
		},
	}

	out := doc.Render()

	// Required markers, in document order.
	idx := 0
	for _, marker := range []string{`<?xml version="1.0" encoding="UTF-8"?>`, "<gpx", "<trk>", "<trkseg>", "<trkpt"} {
		rel := strings.Index(out[idx:], marker)
		if rel < 0 {
			t.Fatalf("Render() missing %q after offset %d in:\n%s", marker, idx, out)
		}
		idx += rel + len(marker)
	}

	for _, want := range []string{
		`version="1.1"`,
		`creator="runcoach"`,
		`xmlns="http://www.topografix.com/GPX/1/1"`,
		"<name>Morning Loop</name>",
		"<desc>Generated loop</desc>",
		"<author><name>runcoach</name></author>",
		"<time>2025-06-01T07:00:00Z</time>",
		`<trkpt lat="52.520008" lon="13.404954"><ele>34.5</ele></trkpt>`,
		`<trkpt lat="52.521000" lon="13.406000"></trkpt>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q in:\n%s", want, out)
		}
	}

	if !ValidateGPX(out) {
		t.Error("ValidateGPX() = false for well-formed output")
	}
}

func TestGPXRenderEscaping(t *testing.T) {
	doc := GPXDocument{
		Name:   `Tom & Jerry's <"fast"> run`,
		Time:   time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC),
		Points: []Point{{Lat: 0, Lng: 0}},
	}

	out := doc.Render()

	if !strings.Contains(out, "Tom &amp; Jerry&apos;s &lt;&quot;fast&quot;&gt; run") {
		t.Errorf("Render() did not escape metadata name, got:\n%s", out)
	}

	// None of the raw characters may survive inside the name elements.
	nameStart := strings.Index(out, "<name>") + len("<name>")
	nameEnd := strings.Index(out, "</name>")
	name := out[nameStart:nameEnd]
	for _, raw := range []string{"&amp;amp;", "<", ">", `"`, "'"} {
		if strings.Contains(name, raw) {
			t.Errorf("escaped name %q still contains %q", name, raw)
		}
	}
}

func TestGPXRenderDefaultTimestamp(t *testing.T) {
	doc := GPXDocument{
		Name:   "Untimed",
		Points: []Point{{Lat: 0, Lng: 0}},
	}

	before := time.Now().UTC().Add(-time.Second)
	out := doc.Render()

	start := strings.Index(out, "<time>")
	end := strings.Index(out, "</time>")
	if start < 0 || end < 0 {
		t.Fatalf("Render() missing <time> element:\n%s", out)
	}
	stamp, err := time.Parse(time.RFC3339, out[start+len("<time>"):end])
	if err != nil {
		t.Fatalf("parsing default timestamp: %v", err)
	}
	if stamp.Before(before) || stamp.After(time.Now().UTC().Add(time.Second)) {
		t.Errorf("default timestamp %v not near now", stamp)
	}
}

func TestValidateGPX(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{
			name:     "rejects non-gpx xml",
			input:    "<invalid>not a gpx file</invalid>",
			expected: false,
		},
		{
			name:     "rejects empty string",
			input:    "",
			expected: false,
		},
		{
			name:     "rejects out-of-order tags",
			input:    `<trkpt><trkseg><trk><gpx><?xml`,
			expected: false,
		},
		{
			name: "accepts minimal well-formed document",
			input: GPXDocument{
				Name:   "ok",
				Points: []Point{{Lat: 1, Lng: 2}},
			}.Render(),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateGPX(tt.input); got != tt.expected {
				t.Errorf("ValidateGPX(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
