// Package mask hides sensitive event fields before they reach the logs.
package mask

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	tagName = "mask"

	cyclePlaceholder = "***cycle***"
)

//nolint:gochecknoglobals // reflect types looked up once
var (
	stringerType      = reflect.TypeFor[fmt.Stringer]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

// Event returns a log-safe view of a handler event. Structs and pointers to structs
// become an ordered map of their exported fields with `mask:"true"` fields replaced;
// any other value is returned unchanged. Structs that print themselves (fmt.Stringer,
// encoding.TextMarshaler, such as time.Time) or have no exported fields are kept as
// they are. A pointer back to an enclosing struct is logged as "***cycle***".
func Event(v any) any {
	if v == nil {
		return nil
	}

	seen := make(map[uintptr]struct{})

	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return nil
		}
		seen[val.Pointer()] = struct{}{}
		val = val.Elem()
	}

	if !isFlattenable(val) {
		return v
	}

	return structToOrdMap(val, "", seen)
}

// StructToOrdMap flattens a struct into an ordered map keyed by dotted field names,
// masking sensitive fields. It returns nil for nil or non-struct input.
func StructToOrdMap(v any) *orderedmap.OrderedMap[string, any] {
	om, _ := Event(v).(*orderedmap.OrderedMap[string, any])
	return om
}

// structToOrdMap walks val; seen holds the pointers on the path from the root.
func structToOrdMap(
	val reflect.Value,
	prefix string,
	seen map[uintptr]struct{},
) *orderedmap.OrderedMap[string, any] {
	om := orderedmap.New[string, any]()
	typ := val.Type()

	for i := range val.NumField() {
		fieldType := typ.Field(i)
		if !fieldType.IsExported() {
			continue
		}

		name, skip := fieldName(fieldType)
		if skip {
			continue
		}
		if prefix != "" {
			name = prefix + "." + name
		}

		field := val.Field(i)

		switch {
		case strings.EqualFold(fieldType.Tag.Get(tagName), "true"):
			om.Set(name, maskValue(field))
		case isNestedStruct(field):
			if field.Kind() == reflect.Pointer {
				ptr := field.Pointer()
				if _, ok := seen[ptr]; ok {
					om.Set(name, cyclePlaceholder)
					continue
				}
				seen[ptr] = struct{}{}
				setAll(om, structToOrdMap(field.Elem(), name, seen))
				delete(seen, ptr)
				continue
			}
			setAll(om, structToOrdMap(field, name, seen))
		default:
			om.Set(name, field.Interface())
		}
	}

	return om
}

func setAll(dst, src *orderedmap.OrderedMap[string, any]) {
	for pair := src.Oldest(); pair != nil; pair = pair.Next() {
		dst.Set(pair.Key, pair.Value)
	}
}

func isNestedStruct(val reflect.Value) bool {
	if val.Kind() == reflect.Pointer {
		return !val.IsNil() && isFlattenable(val.Elem())
	}
	return isFlattenable(val)
}

// isFlattenable reports whether val is a struct worth breaking into fields.
func isFlattenable(val reflect.Value) bool {
	if val.Kind() != reflect.Struct {
		return false
	}

	typ := val.Type()
	if typ.Implements(stringerType) || typ.Implements(textMarshalerType) {
		return false
	}

	for i := range typ.NumField() {
		if typ.Field(i).IsExported() {
			return true
		}
	}

	return false
}

// maskValue keeps absent values visible (nil, zero) so that logs still tell "not sent"
// apart from "sent".
func maskValue(val reflect.Value) any {
	switch val.Kind() { //nolint:exhaustive // remaining kinds are handled below
	case reflect.Pointer, reflect.Interface:
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	case reflect.Slice, reflect.Map:
		if val.IsNil() {
			return nil
		}
	}

	if val.IsZero() {
		return val.Interface()
	}

	switch val.Kind() { //nolint:exhaustive // grouped by family
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "***masked-number***"
	case reflect.Slice, reflect.Array:
		return "***masked-slice***"
	default:
		return fmt.Sprintf("***masked-%s***", val.Kind())
	}
}

// fieldName picks the json tag name, then the yaml one, then the Go field name.
// A "-" tag means the field is skipped.
func fieldName(field reflect.StructField) (string, bool) {
	for _, key := range []string{"json", "yaml"} {
		tag, ok := field.Tag.Lookup(key)
		if !ok {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			return "", true
		}
		if name != "" {
			return name, false
		}
	}

	return field.Name, false
}
