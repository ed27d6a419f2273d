package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// MaxSlots is the largest number of (pivot, node) slots a shortest-path
// queue can address. Slot ids are stored as int32.
const MaxSlots = math.MaxInt32

// ValidatePivotCapacity rejects pivot counts whose virtual slot space
// (pivots * nodes) does not fit into MaxSlots.
func ValidatePivotCapacity(pivots, nodes int) error {
	if pivots <= 0 || nodes <= 0 {
		return nil
	}
	if int64(pivots)*int64(nodes) > MaxSlots {
		return New(ErrCodeCapacity,
			"%d pivots x %d nodes exceeds the queue capacity of %d slots", pivots, nodes, MaxSlots)
	}
	return nil
}

// ValidateWeight checks that an edge weight is a finite positive number.
func ValidateWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return New(ErrCodeInvalidGraph, "edge weight must be finite, got %v", w)
	}
	if w <= 0 {
		return New(ErrCodeInvalidGraph, "edge weight must be positive, got %v", w)
	}
	return nil
}

// ValidatePath validates a file path given on the command line or in a
// config file. Relative and absolute paths are accepted.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateExtension checks that path ends in one of the allowed extensions
// (compared case-insensitively, including the leading dot).
func ValidateExtension(path string, allowed ...string) error {
	ext := strings.ToLower(filepath.Ext(path))
	for _, a := range allowed {
		if ext == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported file extension %q (want one of %s)", ext, strings.Join(allowed, ", "))
}
