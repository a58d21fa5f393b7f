package esconv

import (
	"reflect"
	"time"
)

var (
	timeType  = reflect.TypeOf(time.Time{})
	bytesType = reflect.TypeOf([]byte{})
	mapType   = reflect.TypeOf(map[string]interface{}{})
	sliceType = reflect.TypeOf([]interface{}{})
)

// isStoreType returns true for types a document holds natively
func isStoreType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	switch t {
	case timeType, bytesType, mapType, sliceType:
		return true
	}
	return false
}
