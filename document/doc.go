// Package document maps domain structs to and from search engine documents.
//
// Field values are written through registered write converters (UUID to string,
// decimal to float64, geo point to lat/lon object) and read back through the
// matching read converters; remaining values are coerced with conv.Converter.
package document
