// Package esconv holds the conversions used to map domain object fields to and
// from a search engine document.
//
// A Conversions table is seeded with geo point, UUID and decimal converters,
// extended with caller supplied entries, and is read only once built:
//
//	conversions, err := esconv.New([]*conv.Entry{
//		conv.NewWriting(func(src Money) (string, error) { return src.String(), nil }),
//	})
//	entry, ok := conversions.Lookup(reflect.TypeOf(""), reflect.TypeOf(uuid.UUID{}))
package esconv
