package flags

import "regexp"

var validKey = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// ValidKey reports whether key may be used as a flag name.
func ValidKey(key string) bool {
	return validKey.MatchString(key)
}

// Sanitize drops invalid keys from raw and normalizes the remaining values.
// A nil map yields an empty, non-nil result.
func Sanitize(raw map[string]any) map[string]bool {
	validated := make(map[string]bool, len(raw))
	for key, val := range raw {
		if !ValidKey(key) {
			continue
		}
		validated[key] = Normalize(val)
	}
	return validated
}
