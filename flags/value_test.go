package flags

import "testing"

type settings struct {
	Enabled bool
}

func TestNormalize(t *testing.T) {
	var nilMap map[string]any
	var nilFunc func()
	var nilPtr *settings

	tests := []struct {
		name     string
		input    any
		expected bool
	}{
		{name: "nil", input: nil, expected: false},
		{name: "true", input: true, expected: true},
		{name: "false", input: false, expected: false},
		{name: "string true", input: "true", expected: true},
		{name: "string 1", input: "1", expected: true},
		{name: "string on", input: "on", expected: true},
		{name: "string yes", input: "yes", expected: true},
		{name: "string enable", input: "enable", expected: true},
		{name: "upper case is not recognized", input: "NO", expected: false},
		{name: "YES is case sensitive", input: "YES", expected: false},
		{name: "string null", input: "null", expected: false},
		{name: "empty string", input: "", expected: false},
		{name: "unknown string", input: "maybe", expected: false},
		{name: "number one", input: 1, expected: false},
		{name: "float one", input: 1.0, expected: false},
		{name: "empty map", input: map[string]any{}, expected: true},
		{name: "empty slice", input: []any{}, expected: true},
		{name: "struct", input: settings{}, expected: true},
		{name: "pointer", input: &settings{}, expected: true},
		{name: "func", input: func() {}, expected: true},
		{name: "nil map", input: nilMap, expected: false},
		{name: "nil func", input: nilFunc, expected: false},
		{name: "nil pointer", input: nilPtr, expected: false},
		{name: "channel", input: make(chan int), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%#v) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []any{nil, true, false, "yes", "NO", map[string]any{}, func() {}, 42}
	for _, input := range inputs {
		once := Normalize(input)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize(Normalize(%#v)) = %v, want %v", input, twice, once)
		}
	}
}

func TestKindOf(t *testing.T) {
	type flag string

	tests := []struct {
		input    any
		expected Kind
	}{
		{input: nil, expected: KindNull},
		{input: true, expected: KindBool},
		{input: "on", expected: KindString},
		{input: flag("on"), expected: KindString},
		{input: func() bool { return true }, expected: KindCallable},
		{input: map[string]any{"a": 1}, expected: KindCompound},
		{input: [2]int{}, expected: KindCompound},
		{input: int64(7), expected: KindOther},
	}

	for _, tt := range tests {
		if got := KindOf(tt.input); got != tt.expected {
			t.Errorf("KindOf(%#v) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestNormalize_NamedString(t *testing.T) {
	type flag string
	if !Normalize(flag("enable")) {
		t.Error("expected named string \"enable\" to be on")
	}
}
