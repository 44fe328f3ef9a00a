package utils

import (
	"reflect"
	"strings"
)

// ColumnList returns the `db` tags of a struct, in field order. Embedded structs are flattened.
func ColumnList[T any](prefixes ...string) []string {
	var zero T
	columns := columnsOfType(reflect.TypeOf(zero))
	if len(prefixes) == 0 {
		return columns
	}
	prefixed := make([]string, len(columns))
	for i, column := range columns {
		prefixed[i] = prefixes[0] + "." + column
	}
	return prefixed
}

func columnsOfType(t reflect.Type) []string {
	columns := make([]string, 0, t.NumField())
	for i := range t.NumField() {
		field := t.Field(i)
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			columns = append(columns, columnsOfType(field.Type)...)
			continue
		}
		tag, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		if tag == "" || tag == "-" {
			continue
		}
		columns = append(columns, tag)
	}
	return columns
}
