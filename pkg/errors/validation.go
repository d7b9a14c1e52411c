package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// ValidateCoordinate validates a single coordinate value.
// NaN and infinite values corrupt every downstream geometric predicate,
// so they are rejected at ingestion rather than detected mid-pipeline.
func ValidateCoordinate(v float64) error {
	if math.IsNaN(v) {
		return New(ErrCodeInvalidGeometry, "coordinate is NaN")
	}
	if math.IsInf(v, 0) {
		return New(ErrCodeInvalidGeometry, "coordinate is infinite")
	}
	return nil
}

// ValidateScale validates a scale or radius parameter.
// Scales must be strictly positive and finite.
func ValidateScale(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeValidation, "%s must be finite, got %v", name, v)
	}
	if v <= 0 {
		return New(ErrCodeValidation, "%s must be positive, got %v", name, v)
	}
	return nil
}

// ValidateTolerance validates a tolerance parameter, which may be zero
// (disabled) but never negative or non-finite.
func ValidateTolerance(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeValidation, "%s must be finite, got %v", name, v)
	}
	if v < 0 {
		return New(ErrCodeValidation, "%s cannot be negative, got %v", name, v)
	}
	return nil
}

// layerNameRegex matches valid output layer names.
var layerNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidateLayerName validates an output layer name.
// Layer names become file name components, so they are restricted to a
// conservative lowercase alphabet.
func ValidateLayerName(name string) error {
	if name == "" {
		return New(ErrCodeValidation, "layer name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeValidation, "layer name too long (max 64 characters)")
	}
	if !layerNameRegex.MatchString(name) {
		return New(ErrCodeValidation, "invalid layer name: %q", name)
	}
	return nil
}

// ValidateOutputPath validates an output base path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No backslashes (Windows-style paths)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "output path cannot contain backslashes")
	}

	return nil
}
