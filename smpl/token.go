package smpl

import "reflect"

// tokenIsNil reports whether an opaque token value should be treated
// as the "null token" the spec's BadArg precondition forbids. Value
// types (ints, strings, structs) have no notion of nil and always
// pass; nilable kinds (pointer, interface, map, slice, chan, func)
// are checked with reflection since T is only constrained to
// comparable, not to any nilable shape.
func tokenIsNil(token any) bool {
	if token == nil {
		return true
	}
	v := reflect.ValueOf(token)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return v.IsNil()
	default:
		return false
	}
}
