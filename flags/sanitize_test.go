package flags

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    map[string]any
		expected map[string]bool
	}{
		{
			name:     "nil map",
			input:    nil,
			expected: map[string]bool{},
		},
		{
			name:     "empty map",
			input:    map[string]any{},
			expected: map[string]bool{},
		},
		{
			name: "invalid key is dropped",
			input: map[string]any{
				"bad key!":   "true",
				"good_key.1": "yes",
			},
			expected: map[string]bool{"good_key.1": true},
		},
		{
			name: "values are normalized",
			input: map[string]any{
				"alpha":   true,
				"beta":    "off",
				"gamma":   nil,
				"delta":   map[string]any{},
				"epsilon": 1,
				"Zeta-2":  "on",
			},
			expected: map[string]bool{
				"alpha":   true,
				"beta":    false,
				"gamma":   false,
				"delta":   true,
				"epsilon": false,
				"Zeta-2":  true,
			},
		},
		{
			name: "empty and unicode keys are dropped",
			input: map[string]any{
				"":      true,
				"naïve": true,
				"a/b":   true,
			},
			expected: map[string]bool{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Sanitize(tt.input)
			if diff := cmp.Diff(tt.expected, result); diff != "" {
				t.Errorf("Sanitize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidKey(t *testing.T) {
	valid := []string{"a", "A_1", "feature.beta", "new-ui", "..."}
	invalid := []string{"", "with space", "semi;colon", "ünïcode", "a=b"}

	for _, key := range valid {
		if !ValidKey(key) {
			t.Errorf("expected %q to be valid", key)
		}
	}
	for _, key := range invalid {
		if ValidKey(key) {
			t.Errorf("expected %q to be invalid", key)
		}
	}
}
