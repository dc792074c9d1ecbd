package flags

import "reflect"

// Kind classifies a raw flag value before it is normalized.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindString
	KindCallable
	KindCompound
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindCallable:
		return "callable"
	case KindCompound:
		return "compound"
	default:
		return "other"
	}
}

// truthy lists the string values that enable a flag. Matching is case-sensitive.
var truthy = map[string]bool{
	"true":   true,
	"1":      true,
	"on":     true,
	"yes":    true,
	"enable": true,
}

// KindOf returns the Kind of a raw value. Typed nil pointers, maps, slices
// and funcs are reported as KindNull.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case string:
		return KindString
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func:
		if rv.IsNil() {
			return KindNull
		}
		return KindCallable
	case reflect.Map, reflect.Slice, reflect.Pointer:
		if rv.IsNil() {
			return KindNull
		}
		return KindCompound
	case reflect.Array, reflect.Struct:
		return KindCompound
	case reflect.Bool:
		return KindBool
	case reflect.String:
		return KindString
	default:
		return KindOther
	}
}

// Normalize converts a raw value into a flag state. It never fails: unknown
// values are off, callable and compound values are on.
func Normalize(v any) bool {
	switch KindOf(v) {
	case KindBool:
		return reflect.ValueOf(v).Bool()
	case KindString:
		return truthy[reflect.ValueOf(v).String()]
	case KindCallable, KindCompound:
		return true
	default:
		return false
	}
}
