package conv

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type status string

type testRegistry []*Entry

func (r testRegistry) Lookup(source, target reflect.Type) (*Entry, bool) {
	for i := len(r) - 1; i >= 0; i-- {
		if r[i].Matches(source, target) {
			return r[i], true
		}
	}
	return nil, false
}

func TestConvertToString(t *testing.T) {
	converter := NewConverter(DefaultOptions(), nil)

	testCases := []struct {
		name     string
		src      interface{}
		expected string
	}{
		{"string", "hello", "hello"},
		{"int", 123, "123"},
		{"uint", uint8(7), "7"},
		{"bool true", true, "true"},
		{"float", 123.456, "123.456"},
		{"float32", float32(1.5), "1.5"},
		{"bytes", []byte("hello"), "hello"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var result string
			err := converter.Convert(tc.src, &result)
			if !assert.Nil(t, err) {
				return
			}
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestConvertToNamedString(t *testing.T) {
	converter := NewConverter(DefaultOptions(), nil)
	var result status
	err := converter.Convert("active", &result)
	assert.Nil(t, err)
	assert.Equal(t, status("active"), result)
}

func TestConvertToBool(t *testing.T) {
	converter := NewConverter(DefaultOptions(), nil)

	testCases := []struct {
		name     string
		src      interface{}
		expected bool
		hasError bool
	}{
		{"bool true", true, true, false},
		{"int 1", 1, true, false},
		{"int 0", 0, false, false},
		{"float", 0.5, true, false},
		{"string true", "true", true, false},
		{"string 0", "0", false, false},
		{"string invalid", "yes please", false, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var result bool
			err := converter.Convert(tc.src, &result)
			if tc.hasError {
				assert.NotNil(t, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestConvertToInt(t *testing.T) {
	converter := NewConverter(DefaultOptions(), nil)

	testCases := []struct {
		name     string
		src      interface{}
		dest     interface{}
		expected interface{}
		hasError bool
	}{
		{"int", 123, new(int), 123, false},
		{"int8", int8(8), new(int), 8, false},
		{"uint", uint(123), new(int64), int64(123), false},
		{"float64 whole", float64(42), new(int), 42, false},
		{"float64 fractional", 123.5, new(int), nil, true},
		{"string", "123", new(int32), int32(123), false},
		{"string invalid", "abc", new(int), nil, true},
		{"int8 overflow", 300, new(int8), nil, true},
		{"uint64 overflow", uint64(1 << 63), new(int64), nil, true},
		{"float64 overflow", 1e20, new(int64), nil, true},
		{"float64 upper bound", float64(1 << 63), new(int64), nil, true},
		{"float64 lower bound", float64(-1 << 63), new(int64), int64(-1 << 63), false},
		{"float64 underflow", -1e19, new(int64), nil, true},
		{"float64 to uint64", float64(1 << 63), new(uint64), uint64(1 << 63), false},
		{"float64 uint64 overflow", 1e20, new(uint64), nil, true},
		{"float64 uint64 upper bound", float64(1 << 64), new(uint64), nil, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := converter.Convert(tc.src, tc.dest)
			if tc.hasError {
				assert.NotNil(t, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.expected, reflect.ValueOf(tc.dest).Elem().Interface())
		})
	}
}

func TestConvertToUint(t *testing.T) {
	converter := NewConverter(DefaultOptions(), nil)

	testCases := []struct {
		name     string
		src      interface{}
		expected uint16
		hasError bool
	}{
		{"int", 12, 12, false},
		{"negative int", -1, 0, true},
		{"float", float64(3), 3, false},
		{"negative float", -3.0, 0, true},
		{"string", "65535", 65535, false},
		{"overflow", 70000, 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var result uint16
			err := converter.Convert(tc.src, &result)
			if tc.hasError {
				assert.NotNil(t, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestConvertToFloat(t *testing.T) {
	converter := NewConverter(DefaultOptions(), nil)

	var narrow float32
	assert.NotNil(t, converter.Convert(1e300, &narrow))
	assert.NotNil(t, converter.Convert(-1e39, &narrow))
	assert.NotNil(t, converter.Convert("1e39", &narrow))
	assert.Nil(t, converter.Convert(123.5, &narrow))
	assert.Equal(t, float32(123.5), narrow)

	testCases := []struct {
		name     string
		src      interface{}
		expected float64
	}{
		{"int", 123, 123.0},
		{"float32", float32(123.5), 123.5},
		{"float64", 123.5, 123.5},
		{"string", "123.5", 123.5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var result float64
			err := converter.Convert(tc.src, &result)
			assert.Nil(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestConvertToTime(t *testing.T) {
	converter := NewConverter(DefaultOptions(), nil)
	refTime := time.Date(2023, 1, 15, 12, 30, 45, 0, time.UTC)

	testCases := []struct {
		name     string
		src      interface{}
		expected time.Time
	}{
		{"RFC3339", "2023-01-15T12:30:45Z", refTime},
		{"custom format", "2023-01-15 12:30:45.000", refTime},
		{"epoch millis", refTime.UnixMilli(), refTime},
		{"epoch millis float", float64(refTime.UnixMilli()), refTime},
		{"time.Time", refTime, refTime},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var result time.Time
			err := converter.Convert(tc.src, &result)
			if !assert.Nil(t, err) {
				return
			}
			assert.True(t, tc.expected.Equal(result), "expected %v, got %v", tc.expected, result)
		})
	}

	var result time.Time
	err := converter.Convert("not a date", &result)
	assert.NotNil(t, err)
}

func TestConvertToSlice(t *testing.T) {
	converter := NewConverter(DefaultOptions(), nil)

	testCases := []struct {
		name     string
		src      interface{}
		dest     interface{}
		expected interface{}
	}{
		{"interfaces to ints", []interface{}{float64(1), float64(2)}, &[]int{}, []int{1, 2}},
		{"strings to strings", []string{"a", "b"}, &[]string{}, []string{"a", "b"}},
		{"single value", "a", &[]string{}, []string{"a"}},
		{"string to bytes", "abc", &[]byte{}, []byte("abc")},
		{"ints to pointers", []interface{}{1, 2}, &[]*int{}, []*int{intPtr(1), intPtr(2)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := converter.Convert(tc.src, tc.dest)
			if !assert.Nil(t, err) {
				return
			}
			assert.EqualValues(t, tc.expected, reflect.ValueOf(tc.dest).Elem().Interface())
		})
	}
}

func TestConvertInvalidDestination(t *testing.T) {
	converter := NewConverter(DefaultOptions(), nil)
	var nilPtr *int

	testCases := []struct {
		name string
		dest interface{}
	}{
		{"nil", nil},
		{"non pointer", 1},
		{"nil pointer", nilPtr},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.NotNil(t, converter.Convert(1, tc.dest))
		})
	}
}

func TestConvertRegistryPrecedence(t *testing.T) {
	upper := NewReading(func(src string) (status, error) {
		return status(strings.ToUpper(src)), nil
	})
	failing := NewReading(func(src int) (string, error) {
		return "", errors.New("boom")
	})
	converter := NewConverter(DefaultOptions(), testRegistry{upper, failing})

	var result status
	assert.Nil(t, converter.Convert("active", &result))
	assert.Equal(t, status("ACTIVE"), result)

	var text string
	assert.EqualError(t, converter.Convert(1, &text), "boom")

	var statuses []status
	assert.Nil(t, converter.Convert([]interface{}{"a", "b"}, &statuses))
	assert.Equal(t, []status{"A", "B"}, statuses)
}

func TestConvertUnsupported(t *testing.T) {
	converter := NewConverter(DefaultOptions(), nil)
	var result struct{ Name string }
	assert.NotNil(t, converter.Convert(map[string]interface{}{"Name": "x"}, &result))
}

func intPtr(i int) *int {
	return &i
}
