package errors

import (
	"math"
	"path/filepath"
	"slices"
	"strings"
	"unicode"
)

// MaxDimension is the largest surface width or height accepted from users.
const MaxDimension = 16384

// ValidateSize validates a target surface size.
//
// The validation rules:
//   - Both dimensions must be finite numbers
//   - Both dimensions must be positive
//   - Neither dimension may exceed MaxDimension
func ValidateSize(width, height float64) error {
	for _, d := range []struct {
		name  string
		value float64
	}{{"width", width}, {"height", height}} {
		if math.IsNaN(d.value) || math.IsInf(d.value, 0) {
			return New(ErrCodeInvalidSize, "%s must be a finite number", d.name)
		}
		if d.value <= 0 {
			return New(ErrCodeInvalidSize, "%s must be positive, got %g", d.name, d.value)
		}
		if d.value > MaxDimension {
			return New(ErrCodeInvalidSize, "%s too large (max %d), got %g", d.name, MaxDimension, d.value)
		}
	}
	return nil
}

// ValidateFormat checks that format is one of allowed.
func ValidateFormat(format string, allowed ...string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(allowed, format) {
		return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(allowed, ", "))
	}
	return nil
}

// sceneExtensions lists the file extensions scene documents may use.
var sceneExtensions = []string{".toml", ".yaml", ".yml", ".json"}

// ValidateSceneFilename validates the name of a scene document.
// It must carry a known extension and contain no control characters.
func ValidateSceneFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "scene filename cannot be empty")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "scene filename contains invalid control characters")
		}
	}

	ext := strings.ToLower(filepath.Ext(name))
	if !slices.Contains(sceneExtensions, ext) {
		return New(ErrCodeInvalidFormat, "unsupported scene extension %q (want one of %s)", ext, strings.Join(sceneExtensions, ", "))
	}

	return nil
}
