package cli

import (
	"bytes"
	"context"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestCompleteFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"csv", "json", "pdf", "png", "svg"}},
		{"p", []string{"pdf", "png"}},
		{"csv,", []string{"csv,json", "csv,pdf", "csv,png", "csv,svg"}},
		{"svg,png,p", []string{"svg,png,pdf"}},
		{"gif", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, directive := completeFormats(nil, nil, tt.in)
			if !slices.Equal(got, tt.want) {
				t.Errorf("completeFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if directive&cobra.ShellCompDirectiveNoSpace == 0 {
				t.Error("format completion should not append a space")
			}
		})
	}
}

func TestCompleteSamplers(t *testing.T) {
	got, _ := completeSamplers(nil, nil, "")
	if want := []string{"kmeans", "maxmin", "random"}; !slices.Equal(got, want) {
		t.Errorf("completeSamplers() = %v, want %v", got, want)
	}
	got, _ = completeSamplers(nil, nil, "m")
	if want := []string{"maxmin"}; !slices.Equal(got, want) {
		t.Errorf("completeSamplers(m) = %v, want %v", got, want)
	}
}

func TestSamplerFlagCompletion(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs([]string{cobra.ShellCompRequestCmd, "layout", "--sampler", "k"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out.String(), "kmeans") || strings.Contains(out.String(), "maxmin") {
		t.Errorf("completion output = %q", out.String())
	}
}
