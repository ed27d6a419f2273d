package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/sparsestress/pkg/pipeline"
	"github.com/matzehuels/sparsestress/pkg/stress"
)

// captureUI redirects status output into a buffer for the rest of the test.
func captureUI(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := uiOut
	uiOut = &buf
	t.Cleanup(func() { uiOut = old })
	return &buf
}

func TestPrintStats(t *testing.T) {
	out := captureUI(t)

	printStats(10, 12, &pipeline.LayoutResult{Pivots: []int{1, 2, 3}, Iterations: 40, Converged: true}, false)
	printStats(10, 12, nil, true)

	got := out.String()
	for _, want := range []string{"10 nodes", "12 edges", "3 pivots", "40 iterations", "converged", iconFresh, iconCached} {
		if !strings.Contains(got, want) {
			t.Errorf("printStats output missing %q:\n%s", want, got)
		}
	}
}

func TestPrintTimings(t *testing.T) {
	out := captureUI(t)

	printTimings(pipeline.Timings{MDS: time.Millisecond, Sampling: 2 * time.Millisecond, Stress: 3 * time.Millisecond})
	got := out.String()
	for _, want := range []string{"mds", "sampling", "stress", "3ms"} {
		if !strings.Contains(got, want) {
			t.Errorf("printTimings output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "evaluate") {
		t.Error("evaluate row should be omitted when not run")
	}
}

func TestPrintStressReport(t *testing.T) {
	out := captureUI(t)

	printStressReport(stress.Report{Raw: 2, Scaled: 0.125, Normalized: 0.01, Scale: 1.5})
	got := out.String()
	for _, want := range []string{"stress", "0.125", "normalized", "scale", "1.5"} {
		if !strings.Contains(got, want) {
			t.Errorf("printStressReport output missing %q:\n%s", want, got)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"csv"}},
		{"svg", []string{"svg"}},
		{"csv, svg,png", []string{"csv", "svg", "png"}},
		{"json,", []string{"json"}},
	}
	for _, tt := range tests {
		got := parseFormats(tt.in)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
