package geo

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/esconv/conv"
)

var mapType = reflect.TypeOf(map[string]interface{}{})

func lookup(t *testing.T, direction conv.Direction, source, target reflect.Type) *conv.Entry {
	for _, entry := range Converters() {
		if entry.Direction == direction && entry.Matches(source, target) {
			return entry
		}
	}
	t.Fatalf("missing %v converter %v -> %v", direction, source, target)
	return nil
}

func TestConverters(t *testing.T) {
	entries := Converters()
	assert.Len(t, entries, 4)
	assert.Equal(t, "write:geo.Point->map[string]interface {}", entries[0].String())
	assert.Equal(t, "read:map[string]interface {}->geo.Point", entries[1].String())
	assert.Equal(t, "write:geo.GeoPoint->map[string]interface {}", entries[2].String())
	assert.Equal(t, "read:map[string]interface {}->geo.GeoPoint", entries[3].String())
}

func TestGeoPoint(t *testing.T) {
	writer := lookup(t, conv.Write, reflect.TypeOf(GeoPoint{}), mapType)
	reader := lookup(t, conv.Read, mapType, reflect.TypeOf(GeoPoint{}))

	point := GeoPoint{Lat: 52.52, Lon: 13.405}
	stored, err := writer.Convert(point)
	assert.Nil(t, err)
	assert.Equal(t, map[string]interface{}{"lat": 52.52, "lon": 13.405}, stored)

	restored, err := reader.Convert(stored)
	assert.Nil(t, err)
	assert.Equal(t, point, restored)
}

func TestPoint(t *testing.T) {
	writer := lookup(t, conv.Write, reflect.TypeOf(Point{}), mapType)
	reader := lookup(t, conv.Read, mapType, reflect.TypeOf(Point{}))

	point := Point{X: 13.405, Y: 52.52}
	stored, err := writer.Convert(point)
	assert.Nil(t, err)
	assert.Equal(t, map[string]interface{}{"lat": 52.52, "lon": 13.405}, stored)

	restored, err := reader.Convert(stored)
	assert.Nil(t, err)
	assert.Equal(t, point, restored)
}

func TestReadGeoPoint(t *testing.T) {
	reader := lookup(t, conv.Read, mapType, reflect.TypeOf(GeoPoint{}))

	testCases := []struct {
		description string
		src         map[string]interface{}
		expect      GeoPoint
		hasError    bool
	}{
		{description: "float", src: map[string]interface{}{"lat": 1.5, "lon": -2.5}, expect: GeoPoint{Lat: 1.5, Lon: -2.5}},
		{description: "int", src: map[string]interface{}{"lat": 10, "lon": int64(20)}, expect: GeoPoint{Lat: 10, Lon: 20}},
		{description: "missing lon", src: map[string]interface{}{"lat": 10}, hasError: true},
		{description: "nil lat", src: map[string]interface{}{"lat": nil, "lon": 1.0}, hasError: true},
		{description: "text lat", src: map[string]interface{}{"lat": "10", "lon": 1.0}, hasError: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			actual, err := reader.Convert(testCase.src)
			if testCase.hasError {
				assert.NotNil(t, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, testCase.expect, actual)
		})
	}
}
