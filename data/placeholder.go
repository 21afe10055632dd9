package data

import (
	"reflect"

	"github.com/mattn/go-runewidth"

	"github.com/vlist-tui/vlist/render"
)

// identifiable mirrors render.Identifiable without importing it as a type
// constraint, since data.Manager stays usable for T that never touches the
// render package directly.
type identifiable interface{ ItemID() string }

// placeholderMask is the repeated character used to mask string fields in
// a synthesized placeholder, matching spec.md's "strings -> repeated mask
// char" rule.
const placeholderMask = '█' // full block, reads as an obvious redaction in a terminal

// Placeholder synthesizes a value of type T whose shape matches sample
// items: strings become a run of placeholderMask the same length as a
// sampled string (or a short default if no sample has that field
// populated), numbers become 0, booleans become false, and nested
// structs/slices/maps recurse. index seeds the mask length so adjacent
// placeholders don't all render identically. When T implements
// ItemID() string, the field holding that id is stamped with the stable
// "__placeholder_<index>" form instead of a masked run, so selection and
// pool-cell identity survive a load resolving underneath an unchanged row.
func Placeholder[T any](samples []T, index int) T {
	var zero T
	v := reflect.ValueOf(&zero).Elem()
	if len(samples) == 0 {
		return zero
	}
	sampleVal := samples[index%len(samples)]
	sample := reflect.ValueOf(sampleVal)
	fillPlaceholder(v, sample, index)

	if ident, ok := any(sampleVal).(identifiable); ok && v.Kind() == reflect.Struct {
		if idField := findIDField(sample, ident.ItemID()); idField >= 0 {
			v.Field(idField).SetString(render.PlaceholderID(index))
		}
	}
	return zero
}

// findIDField locates the top-level string field on sample whose value
// equals id, so Placeholder knows which field to stamp with the stable
// masked id instead of a shape-only mask.
func findIDField(sample reflect.Value, id string) int {
	if !sample.IsValid() || sample.Kind() != reflect.Struct {
		return -1
	}
	for i := 0; i < sample.NumField(); i++ {
		f := sample.Field(i)
		if f.Kind() == reflect.String && f.String() == id {
			return i
		}
	}
	return -1
}

func fillPlaceholder(dst, sample reflect.Value, seed int) {
	if !dst.IsValid() || !dst.CanSet() {
		return
	}
	switch dst.Kind() {
	case reflect.String:
		length := 8
		if sample.IsValid() && sample.Kind() == reflect.String {
			// Display width, not byte length, so a masked run of full-block
			// characters occupies the same terminal columns as the real
			// string would (wide runes in the sample count double).
			length = runewidth.StringWidth(sample.String())
			if length == 0 {
				length = 8
			}
		}
		if length > 24 {
			length = 24
		}
		dst.SetString(maskString(length))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		dst.SetInt(0)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		dst.SetUint(0)
	case reflect.Float32, reflect.Float64:
		dst.SetFloat(0)
	case reflect.Bool:
		dst.SetBool(false)
	case reflect.Struct:
		for i := 0; i < dst.NumField(); i++ {
			if !dst.Field(i).CanSet() {
				continue
			}
			var sampleField reflect.Value
			if sample.IsValid() && sample.Kind() == reflect.Struct && i < sample.NumField() {
				sampleField = sample.Field(i)
			}
			fillPlaceholder(dst.Field(i), sampleField, seed)
		}
	case reflect.Ptr:
		if sample.IsValid() && !sample.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
			fillPlaceholder(dst.Elem(), sample.Elem(), seed)
		}
	case reflect.Slice:
		if sample.IsValid() && sample.Kind() == reflect.Slice && sample.Len() > 0 {
			n := sample.Len()
			out := reflect.MakeSlice(dst.Type(), n, n)
			for i := 0; i < n; i++ {
				fillPlaceholder(out.Index(i), sample.Index(i), seed+i)
			}
			dst.Set(out)
		}
	case reflect.Map:
		if sample.IsValid() && sample.Kind() == reflect.Map && sample.Len() > 0 {
			out := reflect.MakeMapWithSize(dst.Type(), sample.Len())
			iter := sample.MapRange()
			for iter.Next() {
				val := reflect.New(dst.Type().Elem()).Elem()
				fillPlaceholder(val, iter.Value(), seed)
				out.SetMapIndex(iter.Key(), val)
			}
			dst.Set(out)
		}
	}
}

func maskString(n int) string {
	runes := make([]rune, n)
	for i := range runes {
		runes[i] = placeholderMask
	}
	return string(runes)
}
