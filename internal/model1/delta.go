package model1

import (
	"reflect"
	"sort"

	"github.com/spf13/cast"
)

// IsFalsy reports whether a value is blank for change detection purposes:
// nil, false, any numeric zero, "0" and "".
func IsFalsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == "" || t == "0"
	case float32:
		return t == 0
	case float64:
		return t == 0
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return cast.ToFloat64(t) == 0
	}
	return false
}

// LooseEqual compares two field values the way a form input does: all
// falsy values are equivalent, numbers and numeric strings compare by
// value, anything else compares by its string form.
func LooseEqual(a, b any) bool {
	if IsFalsy(a) && IsFalsy(b) {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if isComparable(a) && isComparable(b) && a == b {
		return true
	}
	fa, errA := cast.ToFloat64E(a)
	fb, errB := cast.ToFloat64E(b)
	if errA == nil && errB == nil {
		return fa == fb
	}
	sa, errA := cast.ToStringE(a)
	sb, errB := cast.ToStringE(b)
	if errA == nil && errB == nil {
		return sa == sb
	}
	return reflect.DeepEqual(a, b)
}

func isComparable(v any) bool {
	return reflect.TypeOf(v).Comparable()
}

// Delta returns the sorted names of the fields whose current value differs
// from the original snapshot.
func Delta(original, current Fields) []string {
	var changed []string
	for k, v := range current {
		if !LooseEqual(original[k], v) {
			changed = append(changed, k)
		}
	}
	for k, v := range original {
		if _, ok := current[k]; ok {
			continue
		}
		if !LooseEqual(v, nil) {
			changed = append(changed, k)
		}
	}
	sort.Strings(changed)
	return changed
}

// IsBlank returns true if nothing changed between the two snapshots.
func IsBlank(original, current Fields) bool {
	return len(Delta(original, current)) == 0
}
