package document

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"sync"
	"time"
	"unsafe"

	"github.com/viant/esconv"
	"github.com/viant/esconv/conv"
	"github.com/viant/xunsafe"
)

var (
	timeType  = reflect.TypeOf(time.Time{})
	bytesType = reflect.TypeOf([]byte{})

	errNotFinite = errors.New("JSON has no representation for non finite numbers")
)

// Mapper maps domain structs to and from documents using registered conversions
type Mapper struct {
	conversions *esconv.Conversions
	converter   *conv.Converter
	options     *options
	structCache sync.Map // map[reflect.Type]*structInfo
}

// NewMapper creates a mapper
func NewMapper(conversions *esconv.Conversions, opts ...Option) (*Mapper, error) {
	if conversions == nil {
		return nil, fmt.Errorf("conversions were nil: %w", esconv.ErrInvalidArgument)
	}
	o := newOptions(opts)
	return &Mapper{
		conversions: conversions,
		converter:   conv.NewConverter(conv.Options{DateLayout: o.dateLayout}, readRegistry{conversions}),
		options:     o,
	}, nil
}

// Write maps struct or struct pointer into a document
func (m *Mapper) Write(src interface{}) (Document, error) {
	rValue := reflect.ValueOf(src)
	if rValue.Kind() == reflect.Ptr {
		if rValue.IsNil() {
			return nil, fmt.Errorf("failed to write document: source was nil")
		}
		rValue = rValue.Elem()
	}
	if rValue.Kind() != reflect.Struct {
		return nil, fmt.Errorf("failed to write document: expected struct, but had %T", src)
	}
	return m.writeStruct(rValue)
}

// Read maps document into struct pointer
func (m *Mapper) Read(doc Document, dest interface{}) error {
	rValue := reflect.ValueOf(dest)
	if rValue.Kind() != reflect.Ptr || rValue.IsNil() || rValue.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("failed to read document: expected non nil struct pointer, but had %T", dest)
	}
	return m.readStruct(doc, rValue.Elem().Type(), xunsafe.AsPointer(dest))
}

func (m *Mapper) writeStruct(rValue reflect.Value) (Document, error) {
	rType := rValue.Type()
	info, err := m.structInfo(rType)
	if err != nil {
		return nil, err
	}
	if !rValue.CanAddr() {
		holder := reflect.New(rType)
		holder.Elem().Set(rValue)
		rValue = holder.Elem()
	}
	ptr := rValue.Addr().UnsafePointer()
	ret := make(Document, len(info.fields))
	for _, aField := range info.fields {
		value := aField.value(ptr).Interface()
		if aField.omitEmpty && isEmpty(value) {
			continue
		}
		stored, err := m.writeValue(value, aField.timeLayout)
		if err != nil {
			return nil, fmt.Errorf("failed to write field %v: %w", aField.path, err)
		}
		ret[aField.name] = stored
	}
	return ret, nil
}

func (m *Mapper) writeValue(value interface{}, timeLayout string) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	rType := reflect.TypeOf(value)
	if target, ok := m.conversions.WriteTarget(rType); ok {
		entry, _ := m.conversions.LookupDirection(conv.Write, rType, target)
		return entry.Convert(value)
	}
	if rType == timeType {
		if timeLayout == "" {
			timeLayout = m.options.timeLayout
		}
		return value.(time.Time).Format(timeLayout), nil
	}
	if rType == bytesType {
		return base64.StdEncoding.EncodeToString(value.([]byte)), nil
	}

	rValue := reflect.ValueOf(value)
	switch rType.Kind() {
	case reflect.Ptr:
		if rValue.IsNil() {
			return nil, nil
		}
		return m.writeValue(rValue.Elem().Interface(), timeLayout)
	case reflect.String:
		return rValue.String(), nil
	case reflect.Bool:
		return rValue.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rValue.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rValue.Uint(), nil
	case reflect.Float32, reflect.Float64:
		v := rValue.Float()
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &esconv.FormatError{Value: strconv.FormatFloat(v, 'g', -1, 64), Type: rType, Err: errNotFinite}
		}
		return v, nil
	case reflect.Struct:
		doc, err := m.writeStruct(rValue)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}(doc), nil
	case reflect.Slice, reflect.Array:
		if rType.Kind() == reflect.Slice && rValue.IsNil() {
			return nil, nil
		}
		ret := make([]interface{}, rValue.Len())
		for i := range ret {
			item, err := m.writeValue(rValue.Index(i).Interface(), timeLayout)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			ret[i] = item
		}
		return ret, nil
	case reflect.Map:
		if rType.Key().Kind() != reflect.String {
			return nil, fmt.Errorf("unsupported map key type: %v", rType.Key())
		}
		if rValue.IsNil() {
			return nil, nil
		}
		ret := make(map[string]interface{}, rValue.Len())
		iter := rValue.MapRange()
		for iter.Next() {
			key := iter.Key().String()
			item, err := m.writeValue(iter.Value().Interface(), timeLayout)
			if err != nil {
				return nil, fmt.Errorf("[%v]: %w", key, err)
			}
			ret[key] = item
		}
		return ret, nil
	}
	return nil, fmt.Errorf("unsupported type: %v", rType)
}

func (m *Mapper) readStruct(doc map[string]interface{}, rType reflect.Type, ptr unsafe.Pointer) error {
	info, err := m.structInfo(rType)
	if err != nil {
		return err
	}
	for _, aField := range info.fields {
		value, ok := doc[aField.name]
		if !ok || value == nil {
			continue
		}
		fieldValue := reflect.New(aField.rType)
		if err := m.readValue(value, fieldValue, aField.timeLayout); err != nil {
			return fmt.Errorf("failed to read field %v: %w", aField.path, err)
		}
		aField.value(ptr).Set(fieldValue.Elem())
	}
	return nil
}

// readValue reads store value into dest pointer
func (m *Mapper) readValue(value interface{}, dest reflect.Value, timeLayout string) error {
	if doc, ok := value.(Document); ok {
		value = map[string]interface{}(doc)
	}
	destType := dest.Type().Elem()
	srcType := reflect.TypeOf(value)
	if entry, ok := m.conversions.LookupDirection(conv.Read, srcType, destType); ok {
		result, err := entry.Convert(value)
		if err != nil {
			return err
		}
		dest.Elem().Set(reflect.ValueOf(result))
		return nil
	}

	switch destType.Kind() {
	case reflect.Ptr:
		elem := reflect.New(destType.Elem())
		if err := m.readValue(value, elem, timeLayout); err != nil {
			return err
		}
		dest.Elem().Set(elem)
		return nil
	case reflect.Struct:
		if destType == timeType {
			text, ok := value.(string)
			if !ok || timeLayout == "" {
				break
			}
			ts, err := time.Parse(timeLayout, text)
			if err != nil {
				return err
			}
			dest.Elem().Set(reflect.ValueOf(ts))
			return nil
		}
		if object, ok := value.(map[string]interface{}); ok {
			return m.readStruct(object, destType, dest.UnsafePointer())
		}
	case reflect.Slice:
		if destType == bytesType {
			if text, ok := value.(string); ok {
				data, err := base64.StdEncoding.DecodeString(text)
				if err != nil {
					return err
				}
				dest.Elem().SetBytes(data)
				return nil
			}
		}
		if items, ok := value.([]interface{}); ok {
			slice := reflect.MakeSlice(destType, len(items), len(items))
			for i, item := range items {
				if item == nil {
					continue
				}
				if err := m.readValue(item, slice.Index(i).Addr(), timeLayout); err != nil {
					return fmt.Errorf("[%d]: %w", i, err)
				}
			}
			dest.Elem().Set(slice)
			return nil
		}
	case reflect.Map:
		object, ok := value.(map[string]interface{})
		if !ok || destType.Key().Kind() != reflect.String {
			break
		}
		aMap := reflect.MakeMapWithSize(destType, len(object))
		for key, item := range object {
			itemValue := reflect.New(destType.Elem())
			if item != nil {
				if err := m.readValue(item, itemValue, timeLayout); err != nil {
					return fmt.Errorf("[%v]: %w", key, err)
				}
			}
			aMap.SetMapIndex(reflect.ValueOf(key).Convert(destType.Key()), itemValue.Elem())
		}
		dest.Elem().Set(aMap)
		return nil
	}
	return m.converter.Convert(value, dest.Interface())
}

func isEmpty(value interface{}) bool {
	if value == nil {
		return true
	}
	rValue := reflect.ValueOf(value)
	switch rValue.Kind() {
	case reflect.Slice, reflect.Map, reflect.String:
		return rValue.Len() == 0
	}
	return rValue.IsZero()
}

// readRegistry exposes read converters only, so the fallback converter never applies a write conversion
type readRegistry struct {
	conversions *esconv.Conversions
}

func (r readRegistry) Lookup(source, target reflect.Type) (*conv.Entry, bool) {
	return r.conversions.LookupDirection(conv.Read, source, target)
}
