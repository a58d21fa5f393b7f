// Package geo provides geo point types and their store converters.
//
// Both point types are stored as an object with "lat" and "lon" members.
package geo

import (
	"fmt"
	"reflect"

	"github.com/viant/esconv/conv"
)

const (
	latKey = "lat"
	lonKey = "lon"
)

type (
	//GeoPoint represents a geographic coordinate
	GeoPoint struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	}

	//Point represents a cartesian point, X is longitude and Y is latitude
	Point struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
)

// Converters returns geo converters to register
func Converters() []*conv.Entry {
	return []*conv.Entry{
		conv.NewWriting(pointToMap),
		conv.NewReading(mapToPoint),
		conv.NewWriting(geoPointToMap),
		conv.NewReading(mapToGeoPoint),
	}
}

func pointToMap(src Point) (map[string]interface{}, error) {
	return map[string]interface{}{latKey: src.Y, lonKey: src.X}, nil
}

func mapToPoint(src map[string]interface{}) (Point, error) {
	lat, lon, err := latLon(src)
	if err != nil {
		return Point{}, err
	}
	return Point{X: lon, Y: lat}, nil
}

func geoPointToMap(src GeoPoint) (map[string]interface{}, error) {
	return map[string]interface{}{latKey: src.Lat, lonKey: src.Lon}, nil
}

func mapToGeoPoint(src map[string]interface{}) (GeoPoint, error) {
	lat, lon, err := latLon(src)
	if err != nil {
		return GeoPoint{}, err
	}
	return GeoPoint{Lat: lat, Lon: lon}, nil
}

func latLon(src map[string]interface{}) (float64, float64, error) {
	lat, err := coordinate(src, latKey)
	if err != nil {
		return 0, 0, err
	}
	lon, err := coordinate(src, lonKey)
	if err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}

func coordinate(src map[string]interface{}, key string) (float64, error) {
	value, ok := src[key]
	if !ok || value == nil {
		return 0, fmt.Errorf("geo point: missing %v", key)
	}
	rValue := reflect.ValueOf(value)
	switch rValue.Kind() {
	case reflect.Float32, reflect.Float64:
		return rValue.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rValue.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rValue.Uint()), nil
	}
	return 0, fmt.Errorf("geo point: expected numeric %v, but had %T", key, value)
}
