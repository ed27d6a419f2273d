package errors

import (
	"math"
	"testing"
)

func TestValidatePivotCapacity(t *testing.T) {
	tests := []struct {
		name    string
		pivots  int
		nodes   int
		wantErr bool
	}{
		{"small", 200, 1000, false},
		{"exact limit", 1, math.MaxInt32, false},
		{"overflow", 2, math.MaxInt32, true},
		{"large product", 100000, 100000, true},
		{"zero nodes", 100, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePivotCapacity(tt.pivots, tt.nodes)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePivotCapacity(%d, %d) error = %v, wantErr %v", tt.pivots, tt.nodes, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeCapacity) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeCapacity)
			}
		})
	}
}

func TestValidateWeight(t *testing.T) {
	tests := []struct {
		name    string
		w       float64
		wantErr bool
	}{
		{"one", 1, false},
		{"fraction", 0.25, false},
		{"zero", 0, true},
		{"negative", -1, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateWeight(tt.w); (err != nil) != tt.wantErr {
				t.Errorf("ValidateWeight(%v) error = %v, wantErr %v", tt.w, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "graphs/grid.txt", false},
		{"absolute", "/tmp/grid.txt", false},
		{"empty", "", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"too long", string(make([]byte, 5000)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidatePath(tt.input); (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateExtension(t *testing.T) {
	if err := ValidateExtension("a/config.TOML", ".toml", ".yaml"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateExtension("config.ini", ".toml", ".yaml"); !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("expected INVALID_FORMAT, got %v", err)
	}
}
