package document

import (
	"sort"

	"github.com/francoispqt/gojay"
)

type (
	//Document represents store representation of a domain object
	Document map[string]interface{}

	array []interface{}
)

// MarshalJSON encodes document as JSON object with sorted keys
func (d Document) MarshalJSON() ([]byte, error) {
	return gojay.MarshalJSONObject(d)
}

// UnmarshalJSON decodes JSON object, numbers are decoded as float64
func (d *Document) UnmarshalJSON(data []byte) error {
	if *d == nil {
		*d = Document{}
	}
	return gojay.UnmarshalJSONObject(data, d)
}

// MarshalJSONObject implements gojay.MarshalerJSONObject
func (d Document) MarshalJSONObject(enc *gojay.Encoder) {
	keys := make([]string, 0, len(d))
	for key := range d {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		encodeKey(enc, key, d[key])
	}
}

// IsNil implements gojay.MarshalerJSONObject
func (d Document) IsNil() bool {
	return d == nil
}

// UnmarshalJSONObject implements gojay.UnmarshalerJSONObject
func (d *Document) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	var value interface{}
	if err := dec.Interface(&value); err != nil {
		return err
	}
	(*d)[key] = value
	return nil
}

// NKeys implements gojay.UnmarshalerJSONObject
func (d *Document) NKeys() int {
	return 0
}

func (a array) MarshalJSONArray(enc *gojay.Encoder) {
	for _, item := range a {
		encodeElement(enc, item)
	}
}

func (a array) IsNil() bool {
	return a == nil
}

func encodeKey(enc *gojay.Encoder, key string, value interface{}) {
	switch actual := value.(type) {
	case nil:
		enc.NullKey(key)
	case string:
		enc.StringKey(key, actual)
	case bool:
		enc.BoolKey(key, actual)
	case int:
		enc.IntKey(key, actual)
	case int64:
		enc.Int64Key(key, actual)
	case uint64:
		enc.Uint64Key(key, actual)
	case float32:
		enc.Float32Key(key, actual)
	case float64:
		enc.Float64Key(key, actual)
	case Document:
		enc.ObjectKey(key, actual)
	case map[string]interface{}:
		enc.ObjectKey(key, Document(actual))
	case []interface{}:
		enc.ArrayKey(key, array(actual))
	default:
		enc.AddInterfaceKey(key, actual)
	}
}

func encodeElement(enc *gojay.Encoder, value interface{}) {
	switch actual := value.(type) {
	case nil:
		enc.Null()
	case string:
		enc.String(actual)
	case bool:
		enc.Bool(actual)
	case int:
		enc.Int(actual)
	case int64:
		enc.Int64(actual)
	case uint64:
		enc.Uint64(actual)
	case float32:
		enc.Float32(actual)
	case float64:
		enc.Float64(actual)
	case Document:
		enc.Object(actual)
	case map[string]interface{}:
		enc.Object(Document(actual))
	case []interface{}:
		enc.Array(array(actual))
	default:
		enc.AddInterface(actual)
	}
}
